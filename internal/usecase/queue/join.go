package queue

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/tracing"
)

type JoinQueueInput struct {
	ShopID      uuid.UUID
	BarberID    uuid.UUID
	ActorID     *uuid.UUID
	ClientName  string
	ClientPhone string
	ServiceIDs  []uuid.UUID

	// Entrada pela página pública exige profissional trabalhando hoje.
	RequireWorking bool
}

type JoinQueue struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewJoinQueue(repo domain.Repository, audit *audit.Dispatcher) *JoinQueue {
	return &JoinQueue{repo: repo, audit: audit, now: time.Now}
}

func (uc *JoinQueue) Execute(ctx context.Context, in JoinQueueInput) (*models.QueueEntry, error) {
	ctx, span := tracing.Start(ctx, "queue.join")
	defer span.End()

	name := strings.TrimSpace(in.ClientName)
	if in.ShopID == uuid.Nil || in.BarberID == uuid.Nil || name == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	var entry *models.QueueEntry

	err := uc.repo.WithStaffLock(ctx, in.ShopID, in.BarberID, func(tx domain.Tx) error {
		b := tx.Barber()
		if !b.Active {
			return httperr.ErrBusinessf(httperr.CodeNotFound, "barber not found")
		}
		if in.RequireWorking && !b.IsWorkingToday {
			return httperr.ErrBusinessf(httperr.CodeInvalidState, "barber is not working today")
		}

		services, err := resolveAll(ctx, tx, in.ServiceIDs)
		if err != nil {
			return err
		}

		waiting, err := tx.ListWaiting(ctx)
		if err != nil {
			return err
		}

		pos := domain.NextPosition(waiting)
		entry = &models.QueueEntry{
			ShopID:        in.ShopID,
			BarberID:      in.BarberID,
			ClientName:    name,
			ClientPhone:   strings.TrimSpace(in.ClientPhone),
			Status:        string(domain.InitialStatus()),
			QueuePosition: &pos,
			Services:      services,
		}

		return tx.CreateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		ActorID:  in.ActorID,
		Action:   "queue_joined",
		Entity:   "queue_entry",
		EntityID: &entry.ID,
		Metadata: map[string]any{"barber_id": in.BarberID, "position": entry.Position()},
	})

	return entry, nil
}

// resolveAll exige que todos os ids existam na loja.
func resolveAll(ctx context.Context, tx domain.Tx, ids []uuid.UUID) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := tx.ResolveServices(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidServiceSet, "unknown service %s", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, s)
	}
	return out, nil
}
