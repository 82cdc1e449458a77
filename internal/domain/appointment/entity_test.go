package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/shop-queue/internal/models"
)

func TestCheckInThenFollowQueue(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusBooked)}

	if err := CheckIn(ap, now); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := CheckIn(ap, now); err == nil {
		t.Fatalf("second check-in should fail")
	}

	if !FollowQueue(ap, "no_show", now) || ap.Status != string(StatusNoShow) {
		t.Fatalf("expected no_show, got %s", ap.Status)
	}
	if !FollowQueue(ap, "waiting", now) || ap.Status != string(StatusCheckedIn) {
		t.Fatalf("requeue should restore checked_in, got %s", ap.Status)
	}
	if !FollowQueue(ap, "in_progress", now) || ap.Status != string(StatusInProgress) {
		t.Fatalf("expected in_progress, got %s", ap.Status)
	}
	if !FollowQueue(ap, "done", now) || ap.Status != string(StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("expected completed, got %s", ap.Status)
	}
	if FollowQueue(ap, "in_progress", now) {
		t.Fatalf("completed appointment must not move")
	}
}

func TestCancelOnlyBeforeService(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusInProgress)}
	if err := Cancel(ap, now); err == nil {
		t.Fatalf("in_progress appointment should not cancel")
	}

	ap = &models.Appointment{Status: string(StatusCheckedIn)}
	if err := Cancel(ap, now); err == nil {
		t.Fatalf("checked_in appointment follows its queue entry and should not cancel")
	}

	ap = &models.Appointment{Status: string(StatusBooked)}
	if err := Cancel(ap, now); err != nil || ap.CancelledAt == nil {
		t.Fatalf("booked appointment should cancel: %v", err)
	}
}

func TestBlockingStatuses(t *testing.T) {
	for _, s := range []Status{StatusBooked, StatusCheckedIn, StatusInProgress} {
		if !s.Blocks() {
			t.Fatalf("%s should block", s)
		}
	}
	for _, s := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		if s.Blocks() {
			t.Fatalf("%s should not block", s)
		}
	}
}
