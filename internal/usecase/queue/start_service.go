package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/notify"
)

type StartServiceInput struct {
	ShopID  uuid.UUID
	EntryID uuid.UUID
	ActorID *uuid.UUID

	// Avisos ao vivo ligados pelo operador do painel.
	NotifyEnabled bool
}

type StartServiceOutput struct {
	Entry *models.QueueEntry
	// NotifiedID é a nova frente da fila avisada nesta transição, se houve.
	NotifiedID *uuid.UUID
}

type StartService struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewStartService(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *StartService {
	return &StartService{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		now:      time.Now,
	}
}

func (uc *StartService) Execute(ctx context.Context, in StartServiceInput) (*StartServiceOutput, error) {
	now := uc.now()
	out := &StartServiceOutput{}

	err := withEntry(ctx, uc.repo, in.ShopID, in.EntryID, func(tx domain.Tx, e *models.QueueEntry) error {
		if err := domain.CanStart(domain.Status(e.Status)); err != nil {
			return err
		}

		busy, err := tx.HasInProgress(ctx)
		if err != nil {
			return err
		}
		if busy {
			return httperr.ErrBusiness(httperr.CodeAlreadyServing)
		}

		e.Status = string(domain.StatusInProgress)
		e.QueuePosition = nil
		e.StartedAt = &now
		if err := tx.SaveEntry(ctx, e); err != nil {
			return err
		}

		if err := followAppointment(ctx, tx, e, now); err != nil {
			return err
		}

		out.Entry = e

		if !in.NotifyEnabled {
			return nil
		}

		waiting, err := tx.ListWaiting(ctx)
		if err != nil {
			return err
		}

		front := domain.Front(waiting)
		if front == nil || front.NotifiedAt != nil {
			return nil
		}

		// O flag vai junto com a transição; o envio acontece depois do commit.
		front.NotifiedAt = &now
		if err := tx.SaveEntry(ctx, front); err != nil {
			return err
		}

		id := front.ID
		out.NotifiedID = &id
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.NotifiedID != nil {
		uc.notifier.Dispatch(*out.NotifiedID, notify.KindNextInLine)
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		ActorID:  in.ActorID,
		Action:   "queue_service_started",
		Entity:   "queue_entry",
		EntityID: &out.Entry.ID,
	})

	return out, nil
}
