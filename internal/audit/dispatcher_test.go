package audit

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memorySink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if s.fail {
		return errors.New("db down")
	}
	return nil
}

func TestDispatcherDeliversEvents(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink)

	shop := uuid.New()
	d.Dispatch(Event{ShopID: shop, Action: "queue_joined"})
	d.Dispatch(Event{ShopID: shop, Action: "queue_started"})
	d.Close()

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sink.events))
	}
	if sink.events[0].Action != "queue_joined" {
		t.Fatalf("unexpected first event %q", sink.events[0].Action)
	}
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{fail: true}
	d := NewDispatcher(sink)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()

	if len(sink.events) != 2 {
		t.Fatalf("worker should keep going after errors, got %d", len(sink.events))
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "ignored"})
	d.Close()
}
