package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

// ===============================
// Requeue (no_show → waiting, na frente)
// ===============================

type Requeue struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewRequeue(repo domain.Repository, audit *audit.Dispatcher) *Requeue {
	return &Requeue{repo: repo, audit: audit, now: time.Now}
}

func (uc *Requeue) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	entryID uuid.UUID,
) (*models.QueueEntry, error) {

	now := uc.now()
	var out *models.QueueEntry

	err := withEntry(ctx, uc.repo, shopID, entryID, func(tx domain.Tx, e *models.QueueEntry) error {
		if err := domain.CanRequeue(domain.Status(e.Status)); err != nil {
			return err
		}

		waiting, err := tx.ListWaiting(ctx)
		if err != nil {
			return err
		}

		pos := domain.RequeuePosition(waiting)
		e.Status = string(domain.StatusWaiting)
		e.QueuePosition = &pos
		if err := tx.SaveEntry(ctx, e); err != nil {
			return err
		}

		out = e
		return followAppointment(ctx, tx, e, now)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		ActorID:  actorID,
		Action:   "queue_requeued",
		Entity:   "queue_entry",
		EntityID: &out.ID,
		Metadata: map[string]any{"position": out.Position()},
	})

	return out, nil
}

// ===============================
// No-show (waiting → no_show)
// ===============================

type MarkNoShow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewMarkNoShow(repo domain.Repository, audit *audit.Dispatcher) *MarkNoShow {
	return &MarkNoShow{repo: repo, audit: audit, now: time.Now}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	entryID uuid.UUID,
) (*models.QueueEntry, error) {

	now := uc.now()
	var out *models.QueueEntry

	err := withEntry(ctx, uc.repo, shopID, entryID, func(tx domain.Tx, e *models.QueueEntry) error {
		if err := domain.CanMarkNoShow(domain.Status(e.Status)); err != nil {
			return err
		}

		// Sai do conjunto "waiting"; as outras posições ficam como estão.
		e.Status = string(domain.StatusNoShow)
		e.QueuePosition = nil
		if err := tx.SaveEntry(ctx, e); err != nil {
			return err
		}

		out = e
		return followAppointment(ctx, tx, e, now)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		ActorID:  actorID,
		Action:   "queue_no_show",
		Entity:   "queue_entry",
		EntityID: &out.ID,
	})

	return out, nil
}

// ===============================
// Delete
// ===============================

type DeleteEntry struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteEntry(repo domain.Repository, audit *audit.Dispatcher) *DeleteEntry {
	return &DeleteEntry{repo: repo, audit: audit}
}

func (uc *DeleteEntry) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	entryID uuid.UUID,
) error {

	err := withEntry(ctx, uc.repo, shopID, entryID, func(tx domain.Tx, e *models.QueueEntry) error {
		if err := domain.CanDelete(domain.Status(e.Status)); err != nil {
			return err
		}
		return tx.DeleteEntry(ctx, e)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		ActorID:  actorID,
		Action:   "queue_entry_deleted",
		Entity:   "queue_entry",
		EntityID: &entryID,
	})

	return nil
}
