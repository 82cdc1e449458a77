package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

type fakeRepo struct {
	mu sync.Mutex

	shops        map[uuid.UUID]*models.Shop
	services     []models.Service
	barbers      []models.Barber
	waiting      []models.QueueEntry
	appointments []models.Appointment
	clients      []models.Client

	failServices bool
	failQueue    bool
	failAppts    bool
}

var errStore = errors.New("connection reset")

func newFakeRepo() *fakeRepo {
	return &fakeRepo{shops: map[uuid.UUID]*models.Shop{}}
}

func (r *fakeRepo) GetShopByID(_ context.Context, id uuid.UUID) (*models.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) ListServicesByIDs(_ context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]models.Service, error) {
	if r.failServices {
		return nil, errStore
	}
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Service
	for _, s := range r.services {
		if s.ShopID == shopID && s.Active && want[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListWorkingBarbers(_ context.Context, shopID uuid.UUID, barberID *uuid.UUID) ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range r.barbers {
		if b.ShopID != shopID || !b.Active || !b.IsWorkingToday {
			continue
		}
		if barberID != nil && b.ID != *barberID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) ListWaitingEntries(_ context.Context, barberIDs []uuid.UUID) ([]models.QueueEntry, error) {
	if r.failQueue {
		return nil, errStore
	}
	var out []models.QueueEntry
	for _, e := range r.waiting {
		for _, id := range barberIDs {
			if e.BarberID == id && e.Status == "waiting" {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBlockingAppointments(_ context.Context, barberIDs []uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	if r.failAppts {
		return nil, errStore
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if !domain.Status(a.Status).Blocks() {
			continue
		}
		if !a.StartTime.Before(end) || !a.EndTime.After(start) {
			continue
		}
		for _, id := range barberIDs {
			if a.BarberID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, shopID uuid.UUID, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ShopID == shopID && c.Phone == phone && phone != "" {
			cp := c
			return &cp, nil
		}
	}
	c := models.Client{ID: uuid.New(), ShopID: shopID, Name: name, Phone: phone, Email: email}
	r.clients = append(r.clients, c)
	return &c, nil
}

type fakeBookingTx struct {
	r      *fakeRepo
	barber *models.Barber
}

func (tx *fakeBookingTx) Barber() *models.Barber { return tx.barber }

func (tx *fakeBookingTx) ListBlockingAppointments(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range tx.r.appointments {
		if a.BarberID == tx.barber.ID && domain.Status(a.Status).Blocks() &&
			a.StartTime.Before(end) && a.EndTime.After(start) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (tx *fakeBookingTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	tx.r.appointments = append(tx.r.appointments, *ap)
	return nil
}

func (r *fakeRepo) WithBarberLock(ctx context.Context, shopID, barberID uuid.UUID, fn func(tx domain.BookingTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.barbers {
		if r.barbers[i].ID == barberID && r.barbers[i].ShopID == shopID {
			return fn(&fakeBookingTx{r: r, barber: &r.barbers[i]})
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetAppointment(_ context.Context, shopID, id uuid.UUID) (*models.Appointment, error) {
	for _, a := range r.appointments {
		if a.ID == id && a.ShopID == shopID {
			cp := a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, shopID uuid.UUID, barberID *uuid.UUID, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.ShopID != shopID || a.StartTime.Before(start) || !a.StartTime.Before(end) {
			continue
		}
		if barberID != nil && a.BarberID != *barberID {
			continue
		}
		for _, c := range r.clients {
			if c.ID == a.ClientID {
				a.Client = c
			}
		}
		out = append(out, a)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
