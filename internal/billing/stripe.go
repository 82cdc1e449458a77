package billing

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

type checkoutSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type Stripe struct {
	sessions checkoutSessions
	urls     URLs
}

func NewStripe(secretKey string, urls URLs) *Stripe {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &Stripe{
		sessions: sc.CheckoutSessions,
		urls:     urls,
	}
}

func (s *Stripe) Name() string { return ProviderStripe }

func (s *Stripe) CreateCheckout(ctx context.Context, ch Charge) (*Checkout, error) {
	ref := ch.InvoiceID.String()

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.urls.Success),
		CancelURL:         stripe.String(s.urls.Cancel),
		ClientReferenceID: stripe.String(ref),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(ch.Currency)),
					UnitAmount: stripe.Int64(toCents(ch.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(ch.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"invoice_id": ref,
			"shop_id":    ch.ShopID.String(),
		},
	}
	params.Context = ctx
	// Reenvio do mesmo atendimento devolve a mesma sessão.
	params.IdempotencyKey = stripe.String("invoice-" + ref)

	sess, err := s.sessions.New(params)
	if err != nil {
		return nil, err
	}

	return &Checkout{
		Provider: ProviderStripe,
		Ref:      sess.ID,
		URL:      sess.URL,
	}, nil
}
