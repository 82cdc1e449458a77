package billing

import (
	"context"
	"math"

	"github.com/google/uuid"
)

const (
	ProviderNone        = "none"
	ProviderStripe      = "stripe"
	ProviderMercadoPago = "mercadopago"
)

// Charge é o que se cobra ao final de um atendimento.
type Charge struct {
	InvoiceID    uuid.UUID
	ShopID       uuid.UUID
	Description  string
	CustomerName string
	Amount       float64
	Currency     string
}

type Checkout struct {
	Provider string
	Ref      string
	URL      string
}

type Provider interface {
	Name() string
	CreateCheckout(ctx context.Context, ch Charge) (*Checkout, error)
}

// URLs de retorno do checkout hospedado.
type URLs struct {
	Success string
	Cancel  string
	Notify  string
}

type Noop struct{}

func (Noop) Name() string { return ProviderNone }

// CreateCheckout sem provedor: a fatura fica pendente para cobrança no balcão.
func (Noop) CreateCheckout(_ context.Context, _ Charge) (*Checkout, error) {
	return nil, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
