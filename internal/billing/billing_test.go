package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stripe/stripe-go/v79"
)

type fakeSessions struct {
	got *stripe.CheckoutSessionParams
	err error
}

func (f *fakeSessions) New(p *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.got = p
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}, nil
}

func TestStripeCheckoutUsesCents(t *testing.T) {
	fs := &fakeSessions{}
	s := &Stripe{sessions: fs, urls: URLs{Success: "https://ok", Cancel: "https://cancel"}}

	inv := uuid.New()
	out, err := s.CreateCheckout(context.Background(), Charge{
		InvoiceID:   inv,
		Description: "Corte + barba",
		Amount:      65.9,
		Currency:    "BRL",
	})
	if err != nil {
		t.Fatalf("CreateCheckout error: %v", err)
	}
	if out.Ref != "cs_test_1" || out.Provider != ProviderStripe {
		t.Fatalf("unexpected checkout %+v", out)
	}

	item := fs.got.LineItems[0]
	if *item.PriceData.UnitAmount != 6590 {
		t.Fatalf("unit amount = %d, want 6590", *item.PriceData.UnitAmount)
	}
	if *item.PriceData.Currency != "brl" {
		t.Fatalf("currency = %s", *item.PriceData.Currency)
	}
	if *fs.got.ClientReferenceID != inv.String() {
		t.Fatalf("client reference not set to invoice id")
	}
}

func TestStripeCheckoutError(t *testing.T) {
	s := &Stripe{sessions: &fakeSessions{err: errors.New("card_declined")}}
	if _, err := s.CreateCheckout(context.Background(), Charge{Amount: 10, Currency: "brl"}); err == nil {
		t.Fatalf("expected error")
	}
}

type fakePrefs struct {
	got preference.Request
}

func (f *fakePrefs) Create(_ context.Context, r preference.Request) (*preference.Response, error) {
	f.got = r
	return &preference.Response{ID: "pref-1", InitPoint: "https://mp/checkout/pref-1"}, nil
}

func TestMercadoPagoCheckout(t *testing.T) {
	fp := &fakePrefs{}
	m := &MercadoPago{prefs: fp, urls: URLs{Notify: "https://hook"}}

	inv := uuid.New()
	out, err := m.CreateCheckout(context.Background(), Charge{InvoiceID: inv, Description: "Corte", Amount: 40, Currency: "brl"})
	if err != nil {
		t.Fatalf("CreateCheckout error: %v", err)
	}
	if out.URL != "https://mp/checkout/pref-1" {
		t.Fatalf("unexpected url %s", out.URL)
	}
	if fp.got.ExternalReference != inv.String() || fp.got.Items[0].CurrencyID != "BRL" {
		t.Fatalf("unexpected request %+v", fp.got)
	}
}

func TestNoopCheckout(t *testing.T) {
	out, err := Noop{}.CreateCheckout(context.Background(), Charge{})
	if err != nil || out != nil {
		t.Fatalf("noop should return nil, nil")
	}
}
