package queue

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/dto"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
)

type ListQueue struct {
	repo domain.Repository
}

func NewListQueue(repo domain.Repository) *ListQueue {
	return &ListQueue{repo: repo}
}

// Execute sem status devolve a fila viva: quem espera e quem está sendo atendido.
func (uc *ListQueue) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	barberID *uuid.UUID,
	statuses []domain.Status,
) ([]dto.QueueEntryDTO, error) {

	if len(statuses) == 0 {
		statuses = []domain.Status{domain.StatusWaiting, domain.StatusInProgress}
	}

	entries, err := uc.repo.ListForShop(ctx, shopID, barberID, statuses)
	if err != nil {
		return nil, httperr.Upstream("queue", err)
	}

	out := make([]dto.QueueEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.QueueEntryDTO{
			ID:            e.ID,
			BarberID:      e.BarberID,
			ClientName:    e.ClientName,
			Status:        e.Status,
			QueuePosition: e.QueuePosition,
			AppointmentID: e.AppointmentID,
			Notified:      e.NotifiedAt != nil,
			Services:      toDTOServices(e.Services),
			CreatedAt:     e.CreatedAt,
		})
	}

	return out, nil
}
