package queue

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
)

// CompleteAppointment conclui um agendamento pela entrada da fila criada no
// check-in, de modo que entrada, agendamento e fatura mudem juntos.
type CompleteAppointment struct {
	repo domain.Repository
	done *MarkDone
}

func NewCompleteAppointment(repo domain.Repository, done *MarkDone) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, done: done}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
) (*MarkDoneOutput, error) {

	if _, err := uc.repo.GetAppointment(ctx, shopID, appointmentID); err != nil {
		return nil, notFoundOrUpstream("appointment", err)
	}

	e, err := uc.repo.GetEntryForAppointment(ctx, shopID, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidState, "appointment %s was never checked in", appointmentID)
		}
		return nil, httperr.Upstream("queue entry", err)
	}

	return uc.done.Execute(ctx, shopID, actorID, e.ID)
}
