package queue

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/dto"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
)

// GetWaitEstimate é o "~N min de espera" mostrado ao cliente.
type GetWaitEstimate struct {
	repo domain.Repository
}

func NewGetWaitEstimate(repo domain.Repository) *GetWaitEstimate {
	return &GetWaitEstimate{repo: repo}
}

func (uc *GetWaitEstimate) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	barberID uuid.UUID,
) (*dto.WaitEstimateDTO, error) {

	barber, err := uc.repo.GetBarber(ctx, shopID, barberID)
	if err != nil {
		return nil, notFoundOrUpstream("barber", err)
	}

	waiting, err := uc.repo.ListWaiting(ctx, barberID)
	if err != nil {
		return nil, httperr.Upstream("queue", err)
	}

	serving, err := uc.repo.ListForShop(ctx, shopID, &barberID, []domain.Status{domain.StatusInProgress})
	if err != nil {
		return nil, httperr.Upstream("queue", err)
	}

	return &dto.WaitEstimateDTO{
		BarberID:       barber.ID,
		BarberName:     barber.Name,
		Waiting:        len(waiting),
		BacklogMinutes: domain.EstimateBacklog(waiting),
		Serving:        len(serving) > 0,
	}, nil
}
