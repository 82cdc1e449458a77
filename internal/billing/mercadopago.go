package billing

import (
	"context"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type preferenceClient interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type MercadoPago struct {
	prefs preferenceClient
	urls  URLs
}

func NewMercadoPago(accessToken string, urls URLs) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{
		prefs: preference.NewClient(cfg),
		urls:  urls,
	}, nil
}

func (m *MercadoPago) Name() string { return ProviderMercadoPago }

func (m *MercadoPago) CreateCheckout(ctx context.Context, ch Charge) (*Checkout, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         ch.InvoiceID.String(),
				Title:      ch.Description,
				Quantity:   1,
				UnitPrice:  ch.Amount,
				CurrencyID: strings.ToUpper(ch.Currency),
			},
		},
		ExternalReference: ch.InvoiceID.String(),
		NotificationURL:   m.urls.Notify,
		BackURLs: &preference.BackURLsRequest{
			Success: m.urls.Success,
			Failure: m.urls.Cancel,
			Pending: m.urls.Success,
		},
	}

	resp, err := m.prefs.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Checkout{
		Provider: ProviderMercadoPago,
		Ref:      resp.ID,
		URL:      resp.InitPoint,
	}, nil
}
