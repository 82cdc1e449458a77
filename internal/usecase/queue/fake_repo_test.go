package queue

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

var errDuplicatePosition = errors.New("duplicate key value violates unique constraint")

// fakeRepo imita o banco: um mutex por profissional faz o papel do
// SELECT ... FOR UPDATE e as checagens de unicidade fazem o papel dos índices.
type fakeRepo struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex

	barbers      map[uuid.UUID]models.Barber
	services     map[uuid.UUID]models.Service
	entries      map[uuid.UUID]models.QueueEntry
	appointments map[uuid.UUID]models.Appointment
	invoices     map[uuid.UUID]models.Invoice
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		locks:        map[uuid.UUID]*sync.Mutex{},
		barbers:      map[uuid.UUID]models.Barber{},
		services:     map[uuid.UUID]models.Service{},
		entries:      map[uuid.UUID]models.QueueEntry{},
		appointments: map[uuid.UUID]models.Appointment{},
		invoices:     map[uuid.UUID]models.Invoice{},
	}
}

func (r *fakeRepo) GetEntry(_ context.Context, shopID, id uuid.UUID) (*models.QueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.ShopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, shopID, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.ShopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeRepo) GetEntryForAppointment(_ context.Context, shopID, appointmentID uuid.UUID) (*models.QueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ShopID == shopID && e.AppointmentID != nil && *e.AppointmentID == appointmentID {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetBarber(_ context.Context, shopID, id uuid.UUID) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok || b.ShopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *fakeRepo) waitingFor(barberID uuid.UUID) []models.QueueEntry {
	var out []models.QueueEntry
	for _, e := range r.entries {
		if e.BarberID == barberID && e.Status == string(domain.StatusWaiting) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position() < out[j].Position() })
	return out
}

func (r *fakeRepo) ListWaiting(_ context.Context, barberID uuid.UUID) ([]models.QueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.waitingFor(barberID), nil
}

func (r *fakeRepo) ListForShop(_ context.Context, shopID uuid.UUID, barberID *uuid.UUID, statuses []domain.Status) ([]models.QueueEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.QueueEntry
	for _, e := range r.entries {
		if e.ShopID != shopID || (barberID != nil && e.BarberID != *barberID) {
			continue
		}
		for _, s := range statuses {
			if e.Status == string(s) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) SaveInvoice(_ context.Context, inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeRepo) WithStaffLock(_ context.Context, shopID, barberID uuid.UUID, fn func(tx domain.Tx) error) error {
	r.mu.Lock()
	b, ok := r.barbers[barberID]
	if !ok || b.ShopID != shopID {
		r.mu.Unlock()
		return gorm.ErrRecordNotFound
	}
	l, ok := r.locks[barberID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[barberID] = l
	}
	r.mu.Unlock()

	l.Lock()
	defer l.Unlock()

	// Alterações só valem se fn terminar sem erro, como um rollback.
	tx := &fakeTx{r: r, barber: b, staged: map[uuid.UUID]*models.QueueEntry{}}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

type fakeTx struct {
	r      *fakeRepo
	barber models.Barber

	staged   map[uuid.UUID]*models.QueueEntry
	deleted  []uuid.UUID
	appts    []models.Appointment
	invoices []models.Invoice
}

func (tx *fakeTx) Barber() *models.Barber { return &tx.barber }

func (tx *fakeTx) view() map[uuid.UUID]models.QueueEntry {
	tx.r.mu.Lock()
	defer tx.r.mu.Unlock()
	out := map[uuid.UUID]models.QueueEntry{}
	for id, e := range tx.r.entries {
		out[id] = e
	}
	for id, e := range tx.staged {
		out[id] = *e
	}
	for _, id := range tx.deleted {
		delete(out, id)
	}
	return out
}

func (tx *fakeTx) GetEntry(_ context.Context, id uuid.UUID) (*models.QueueEntry, error) {
	e, ok := tx.view()[id]
	if !ok || e.BarberID != tx.barber.ID {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (tx *fakeTx) ListWaiting(_ context.Context) ([]models.QueueEntry, error) {
	var out []models.QueueEntry
	for _, e := range tx.view() {
		if e.BarberID == tx.barber.ID && e.Status == string(domain.StatusWaiting) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position() < out[j].Position() })
	return out, nil
}

func (tx *fakeTx) HasInProgress(_ context.Context) (bool, error) {
	for _, e := range tx.view() {
		if e.BarberID == tx.barber.ID && e.Status == string(domain.StatusInProgress) {
			return true, nil
		}
	}
	return false, nil
}

func (tx *fakeTx) ResolveServices(_ context.Context, ids []uuid.UUID) ([]models.Service, error) {
	tx.r.mu.Lock()
	defer tx.r.mu.Unlock()
	var out []models.Service
	for _, id := range ids {
		if s, ok := tx.r.services[id]; ok && s.ShopID == tx.barber.ShopID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (tx *fakeTx) CreateEntry(_ context.Context, e *models.QueueEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	tx.staged[e.ID] = &cp
	return nil
}

func (tx *fakeTx) SaveEntry(_ context.Context, e *models.QueueEntry) error {
	cp := *e
	tx.staged[e.ID] = &cp
	return nil
}

func (tx *fakeTx) DeleteEntry(_ context.Context, e *models.QueueEntry) error {
	tx.deleted = append(tx.deleted, e.ID)
	return nil
}

func (tx *fakeTx) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	for i := len(tx.appts) - 1; i >= 0; i-- {
		if tx.appts[i].ID == id {
			a := tx.appts[i]
			return &a, nil
		}
	}
	tx.r.mu.Lock()
	defer tx.r.mu.Unlock()
	a, ok := tx.r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (tx *fakeTx) SaveAppointment(_ context.Context, ap *models.Appointment) error {
	tx.appts = append(tx.appts, *ap)
	return nil
}

func (tx *fakeTx) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	tx.invoices = append(tx.invoices, *inv)
	return nil
}

func (tx *fakeTx) commit() error {
	next := tx.view()

	positions := map[int]bool{}
	serving := 0
	for _, e := range next {
		if e.BarberID != tx.barber.ID {
			continue
		}
		switch e.Status {
		case string(domain.StatusWaiting):
			if positions[e.Position()] {
				return errDuplicatePosition
			}
			positions[e.Position()] = true
		case string(domain.StatusInProgress):
			serving++
		}
	}
	if serving > 1 {
		return errDuplicatePosition
	}

	tx.r.mu.Lock()
	defer tx.r.mu.Unlock()
	for id, e := range tx.staged {
		tx.r.entries[id] = *e
	}
	for _, id := range tx.deleted {
		delete(tx.r.entries, id)
	}
	for _, a := range tx.appts {
		tx.r.appointments[a.ID] = a
	}
	for _, inv := range tx.invoices {
		tx.r.invoices[inv.ID] = inv
	}
	return nil
}

var (
	_ domain.Repository = (*fakeRepo)(nil)
	_ domain.Tx         = (*fakeTx)(nil)
)
