package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	apptdomain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

// CheckInAppointment marca a chegada do cliente e o coloca no fim da fila
// do profissional do agendamento.
type CheckInAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCheckInAppointment(repo domain.Repository, audit *audit.Dispatcher) *CheckInAppointment {
	return &CheckInAppointment{repo: repo, audit: audit, now: time.Now}
}

func (uc *CheckInAppointment) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
) (*models.QueueEntry, error) {

	owner, err := uc.repo.GetAppointment(ctx, shopID, appointmentID)
	if err != nil {
		return nil, notFoundOrUpstream("appointment", err)
	}

	now := uc.now()
	var entry *models.QueueEntry

	err = uc.repo.WithStaffLock(ctx, shopID, owner.BarberID, func(tx domain.Tx) error {
		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return notFoundOrUpstream("appointment", err)
		}

		if err := apptdomain.CheckIn(ap, now); err != nil {
			return err
		}
		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}

		waiting, err := tx.ListWaiting(ctx)
		if err != nil {
			return err
		}

		pos := domain.NextPosition(waiting)
		apID := ap.ID
		entry = &models.QueueEntry{
			ShopID:        shopID,
			BarberID:      ap.BarberID,
			ClientName:    ap.Client.Name,
			ClientPhone:   ap.Client.Phone,
			Status:        string(domain.InitialStatus()),
			QueuePosition: &pos,
			AppointmentID: &apID,
			Services:      ap.Services,
		}

		return tx.CreateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		ActorID:  actorID,
		Action:   "appointment_checked_in",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"queue_entry_id": entry.ID},
	})

	return entry, nil
}
