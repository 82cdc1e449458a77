package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	domain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

// transition aplica uma ação de domínio a um agendamento e grava.
type transition struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	now    func() time.Time
	action string
	apply  func(ap *models.Appointment, now time.Time) error
}

func (t *transition) run(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := t.repo.GetAppointment(ctx, shopID, appointmentID)
	if err != nil {
		return nil, notFoundOrUpstream("appointment", err)
	}

	if err := t.apply(ap, t.now()); err != nil {
		return nil, err
	}

	if err := t.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	t.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		ActorID:  actorID,
		Action:   t.action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// ===============================
// Cancel
// ===============================

type CancelAppointment struct {
	transition
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{transition{
		repo:   repo,
		audit:  audit,
		now:    time.Now,
		action: "appointment_cancelled",
		apply:  domain.Cancel,
	}}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return uc.run(ctx, shopID, actorID, appointmentID)
}

// ===============================
// No-show
// ===============================

type MarkAppointmentNoShow struct {
	transition
}

func NewMarkAppointmentNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *MarkAppointmentNoShow {
	return &MarkAppointmentNoShow{transition{
		repo:   repo,
		audit:  audit,
		now:    time.Now,
		action: "appointment_no_show",
		apply: func(ap *models.Appointment, _ time.Time) error {
			return domain.MarkNoShow(ap)
		},
	}}
}

func (uc *MarkAppointmentNoShow) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return uc.run(ctx, shopID, actorID, appointmentID)
}
