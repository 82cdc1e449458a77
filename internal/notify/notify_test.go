package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeAPI struct {
	sent []*twilioApi.CreateMessageParams
	err  error
}

func (f *fakeAPI) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, p)
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

type fakeContacts map[uuid.UUID]*Contact

func (f fakeContacts) ContactForEntry(_ context.Context, id uuid.UUID) (*Contact, error) {
	c, ok := f[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func TestTwilioSendsNextInLine(t *testing.T) {
	id := uuid.New()
	api := &fakeAPI{}
	n := &Twilio{
		api:      api,
		from:     "+15550000000",
		contacts: fakeContacts{id: {Name: "Carlos", Phone: "+5511988887777", ShopName: "Navalha"}},
	}

	res, err := n.Notify(context.Background(), id, KindNextInLine)
	if err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if !res.Sent {
		t.Fatalf("expected sent, got %+v", res)
	}
	if len(api.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(api.sent))
	}
	if to := api.sent[0].To; to == nil || *to != "+5511988887777" {
		t.Fatalf("unexpected recipient %v", to)
	}
	if body := api.sent[0].Body; body == nil || *body != "Olá Carlos, você é o próximo da fila na Navalha!" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestTwilioSkipsWithoutPhone(t *testing.T) {
	id := uuid.New()
	api := &fakeAPI{}
	n := &Twilio{api: api, contacts: fakeContacts{id: {Name: "Walk-in"}}}

	res, err := n.Notify(context.Background(), id, KindNextInLine)
	if err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if res.Sent || res.Reason == "" {
		t.Fatalf("expected skip with reason, got %+v", res)
	}
	if len(api.sent) != 0 {
		t.Fatalf("nothing should be sent")
	}
}

func TestTwilioSurfacesProviderError(t *testing.T) {
	id := uuid.New()
	n := &Twilio{
		api:      &fakeAPI{err: errors.New("401")},
		contacts: fakeContacts{id: {Phone: "+5511988887777"}},
	}

	if _, err := n.Notify(context.Background(), id, KindNextInLine); err == nil {
		t.Fatalf("expected error")
	}
}

type countingNotifier struct {
	mu    sync.Mutex
	calls []uuid.UUID
	err   error
}

func (c *countingNotifier) Notify(_ context.Context, id uuid.UUID, _ Kind) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, id)
	if c.err != nil {
		return Result{}, c.err
	}
	return Sent(), nil
}

func TestDispatcherDeliversAndSwallowsErrors(t *testing.T) {
	n := &countingNotifier{err: errors.New("gateway down")}
	d := NewDispatcher(n)

	a, b := uuid.New(), uuid.New()
	d.Dispatch(a, KindNextInLine)
	d.Dispatch(b, KindNextInLine)
	d.Close()

	if len(n.calls) != 2 || n.calls[0] != a || n.calls[1] != b {
		t.Fatalf("unexpected calls %v", n.calls)
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(uuid.New(), KindNextInLine)
	d.Close()
}
