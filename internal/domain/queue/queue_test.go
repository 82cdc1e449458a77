package queue

import (
	"testing"

	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

func waitingAt(positions ...int) []models.QueueEntry {
	out := make([]models.QueueEntry, 0, len(positions))
	for _, p := range positions {
		p := p
		out = append(out, models.QueueEntry{Status: string(StatusWaiting), QueuePosition: &p})
	}
	return out
}

func TestNextPositionIsMonotonic(t *testing.T) {
	var q []models.QueueEntry
	prev := 0
	for i := 0; i < 5; i++ {
		pos := NextPosition(q)
		if pos <= prev {
			t.Fatalf("insertion %d got position %d, previous %d", i, pos, prev)
		}
		q = append(q, waitingAt(pos)...)
		prev = pos
	}
	if prev != 5 {
		t.Fatalf("expected last position 5, got %d", prev)
	}
}

func TestNextPositionIgnoresNonWaiting(t *testing.T) {
	q := waitingAt(1, 2)
	nine := 9
	q = append(q, models.QueueEntry{Status: string(StatusNoShow), QueuePosition: &nine})

	if got := NextPosition(q); got != 3 {
		t.Fatalf("NextPosition = %d, want 3", got)
	}
}

func TestRequeuePosition(t *testing.T) {
	if got := RequeuePosition(nil); got != 1 {
		t.Fatalf("empty queue: got %d, want 1", got)
	}

	q := waitingAt(1, 2)
	got := RequeuePosition(q)
	if got != 0 {
		t.Fatalf("got %d, want 0", got)
	}

	q = append(q, waitingAt(got)...)
	if front := Front(q); front == nil || front.Position() != 0 {
		t.Fatalf("requeued entry should be the new front")
	}

	if again := RequeuePosition(q); again != -1 {
		t.Fatalf("second requeue got %d, want -1", again)
	}
}

func TestFront(t *testing.T) {
	if Front(nil) != nil {
		t.Fatalf("expected nil front for empty queue")
	}

	q := waitingAt(4, 2, 7)
	if f := Front(q); f == nil || f.Position() != 2 {
		t.Fatalf("unexpected front %+v", f)
	}
}

func TestEstimateBacklog(t *testing.T) {
	if got := EstimateBacklog(nil); got != 0 {
		t.Fatalf("empty backlog = %d", got)
	}

	q := waitingAt(1, 2, 3)
	q[0].Services = []models.Service{{DurationMinutes: 30}, {DurationMinutes: 15}}
	q[1].Services = []models.Service{{DurationMinutes: 20}}

	// 45 + 20 + 0 + 3*5
	if got := EstimateBacklog(q); got != 80 {
		t.Fatalf("backlog = %d, want 80", got)
	}

	serving := models.QueueEntry{
		Status:   string(StatusInProgress),
		Services: []models.Service{{DurationMinutes: 60}},
	}
	if got := EstimateBacklog(append(q, serving)); got != 80 {
		t.Fatalf("in-progress entry must not count, got %d", got)
	}
}

func TestTransitions(t *testing.T) {
	if err := CanStart(StatusWaiting); err != nil {
		t.Fatalf("waiting should start: %v", err)
	}
	if err := CanStart(StatusNoShow); !httperr.IsBusiness(err, httperr.CodeInvalidState) {
		t.Fatalf("no_show should not start, got %v", err)
	}
	if err := CanRequeue(StatusNoShow); err != nil {
		t.Fatalf("no_show should requeue: %v", err)
	}
	if err := CanRequeue(StatusDone); err == nil {
		t.Fatalf("done should not requeue")
	}
	if err := CanComplete(StatusInProgress); err != nil {
		t.Fatalf("in_progress should complete: %v", err)
	}
	if err := CanDelete(StatusInProgress); err == nil {
		t.Fatalf("in_progress should not be deleted")
	}
	for _, s := range []Status{StatusWaiting, StatusNoShow, StatusDone} {
		if err := CanDelete(s); err != nil {
			t.Fatalf("%s should be deletable: %v", s, err)
		}
	}
}
