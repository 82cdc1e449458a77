package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	domain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/shop-queue/internal/domain/hours"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ShopID   uuid.UUID
	BarberID uuid.UUID

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uuid.UUID

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ShopID == uuid.Nil || in.BarberID == uuid.Nil ||
		strings.TrimSpace(in.ClientName) == "" || len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// 1️⃣ Loja
	// --------------------------------------------------
	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, notFoundOrUpstream("shop", err)
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no fuso do negócio
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		timezone.DateLayout+" "+timezone.ClockLayout,
		in.Date+" "+in.Time,
		uc.loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	now := uc.now().In(uc.loc)
	minAdvance := time.Duration(shop.MinAdvanceMinutes) * time.Minute
	if start.Before(now.Add(minAdvance)) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	// --------------------------------------------------
	// 4️⃣ Serviços
	// --------------------------------------------------
	minutes, services, err := resolveServices(ctx, uc.repo, shop.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(minutes) * time.Minute)

	// --------------------------------------------------
	// 5️⃣ Expediente da loja
	// --------------------------------------------------
	ok, err := withinHours(shop, start, end, uc.loc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	// --------------------------------------------------
	// 6️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		shop.ID,
		strings.TrimSpace(in.ClientName),
		strings.TrimSpace(in.ClientPhone),
		strings.TrimSpace(in.ClientEmail),
	)
	if err != nil {
		return nil, httperr.Upstream("client", err)
	}

	// --------------------------------------------------
	// 7️⃣ Conflito revalidado com o profissional travado
	// --------------------------------------------------
	ap := &models.Appointment{
		ShopID:    shop.ID,
		BarberID:  in.BarberID,
		ClientID:  client.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Services:  services,
		Notes:     in.Notes,
	}

	err = uc.repo.WithBarberLock(ctx, shop.ID, in.BarberID, func(tx domain.BookingTx) error {
		if b := tx.Barber(); !b.Active {
			return httperr.ErrBusinessf(httperr.CodeNotFound, "barber not found")
		}

		span := time.Duration(minutes)*time.Minute + domain.InterAppointmentBuffer
		existing, err := tx.ListBlockingAppointments(ctx, start, start.Add(span))
		if err != nil {
			return httperr.Upstream("appointments", err)
		}

		if domain.Overlaps(start, minutes, existing) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"barber_id": in.BarberID, "start": start},
	})

	ap.Client = *client
	return ap, nil
}

// withinHours aceita a janela do próprio dia ou a da véspera quando a loja
// vira a noite.
func withinHours(shop *models.Shop, start, end time.Time, loc *time.Location) (bool, error) {
	for _, day := range []time.Time{start, start.AddDate(0, 0, -1)} {
		w, err := hours.WindowFor(shop.OpeningTime, shop.ClosingTime, day, loc)
		if err != nil {
			return false, err
		}
		if w.Contains(start, end) {
			return true, nil
		}
	}
	return false, nil
}
