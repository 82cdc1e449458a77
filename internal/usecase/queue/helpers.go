package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apptdomain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

func notFoundOrUpstream(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusinessf(httperr.CodeNotFound, "%s not found", op)
	}
	return httperr.Upstream(op, err)
}

// withEntry trava a fila do profissional dono da entrada e relê a entrada
// já sob o lock.
func withEntry(
	ctx context.Context,
	repo domain.Repository,
	shopID uuid.UUID,
	entryID uuid.UUID,
	fn func(tx domain.Tx, e *models.QueueEntry) error,
) error {

	owner, err := repo.GetEntry(ctx, shopID, entryID)
	if err != nil {
		return notFoundOrUpstream("queue entry", err)
	}

	return repo.WithStaffLock(ctx, shopID, owner.BarberID, func(tx domain.Tx) error {
		e, err := tx.GetEntry(ctx, entryID)
		if err != nil {
			return notFoundOrUpstream("queue entry", err)
		}
		return fn(tx, e)
	})
}

// followAppointment leva o agendamento vinculado junto com a entrada.
func followAppointment(ctx context.Context, tx domain.Tx, e *models.QueueEntry, now time.Time) error {
	if e.AppointmentID == nil {
		return nil
	}

	ap, err := tx.GetAppointment(ctx, *e.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if !apptdomain.FollowQueue(ap, e.Status, now) {
		return nil
	}
	return tx.SaveAppointment(ctx, ap)
}

func toDTOServices(services []models.Service) []string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return names
}
