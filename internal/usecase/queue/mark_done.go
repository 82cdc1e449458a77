package queue

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	"github.com/BruksfildServices01/shop-queue/internal/billing"
	apptdomain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

type MarkDoneOutput struct {
	Entry   *models.QueueEntry
	Invoice *models.Invoice
}

// MarkDone encerra o atendimento e registra a fatura. A cobrança no provedor
// é tentada depois do commit e nunca desfaz a transição.
type MarkDone struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	billing  billing.Provider
	currency string
	now      func() time.Time
}

func NewMarkDone(
	repo domain.Repository,
	audit *audit.Dispatcher,
	provider billing.Provider,
	currency string,
) *MarkDone {
	if provider == nil {
		provider = billing.Noop{}
	}
	return &MarkDone{
		repo:     repo,
		audit:    audit,
		billing:  provider,
		currency: currency,
		now:      time.Now,
	}
}

func (uc *MarkDone) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	entryID uuid.UUID,
) (*MarkDoneOutput, error) {

	now := uc.now()
	out := &MarkDoneOutput{}

	err := withEntry(ctx, uc.repo, shopID, entryID, func(tx domain.Tx, e *models.QueueEntry) error {
		if err := domain.CanComplete(domain.Status(e.Status)); err != nil {
			return err
		}

		e.Status = string(domain.StatusDone)
		e.QueuePosition = nil
		e.CompletedAt = &now
		if err := tx.SaveEntry(ctx, e); err != nil {
			return err
		}

		if err := followAppointment(ctx, tx, e, now); err != nil {
			return err
		}

		inv := &models.Invoice{
			ShopID:       shopID,
			QueueEntryID: e.ID,
			ClientName:   e.ClientName,
			Amount:       apptdomain.TotalPrice(e.Services),
			Currency:     uc.currency,
			Status:       models.InvoicePending,
			Provider:     uc.billing.Name(),
		}
		if err := tx.CreateInvoice(ctx, inv); err != nil {
			return err
		}

		out.Entry = e
		out.Invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.checkout(ctx, out.Entry, out.Invoice)

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		ActorID:  actorID,
		Action:   "queue_service_done",
		Entity:   "queue_entry",
		EntityID: &out.Entry.ID,
		Metadata: map[string]any{"invoice_id": out.Invoice.ID, "amount": out.Invoice.Amount},
	})

	return out, nil
}

func (uc *MarkDone) checkout(ctx context.Context, e *models.QueueEntry, inv *models.Invoice) {
	if inv.Amount <= 0 {
		return
	}

	co, err := uc.billing.CreateCheckout(ctx, billing.Charge{
		InvoiceID:    inv.ID,
		ShopID:       inv.ShopID,
		Description:  strings.Join(toDTOServices(e.Services), " + "),
		CustomerName: inv.ClientName,
		Amount:       inv.Amount,
		Currency:     inv.Currency,
	})
	switch {
	case err != nil:
		log.Warn().Err(err).Str("invoice_id", inv.ID.String()).Msg("checkout creation failed")
		inv.Status = models.InvoiceFailed
	case co == nil:
		return
	default:
		inv.Status = models.InvoiceOpen
		inv.ProviderRef = co.Ref
		inv.CheckoutURL = co.URL
	}

	if err := uc.repo.SaveInvoice(ctx, inv); err != nil {
		log.Error().Err(err).Str("invoice_id", inv.ID.String()).Msg("invoice update failed")
	}
}
