package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeStore struct {
	shops   []ShopHours
	resets  map[uuid.UUID]time.Time
	cleared []time.Time
	err     error
}

func (f *fakeStore) ListShopHours(ctx context.Context) ([]ShopHours, error) {
	return f.shops, f.err
}

func (f *fakeStore) ResetShop(ctx context.Context, shopID uuid.UUID, closedAt time.Time) (int64, error) {
	if f.resets == nil {
		f.resets = map[uuid.UUID]time.Time{}
	}
	f.resets[shopID] = closedAt
	for i := range f.shops {
		if f.shops[i].ID == shopID {
			at := closedAt
			f.shops[i].RosterResetAt = &at
		}
	}
	return 3, f.err
}

func (f *fakeStore) ClearExpiredBreaks(ctx context.Context, now time.Time) (int64, error) {
	f.cleared = append(f.cleared, now)
	return 1, f.err
}

func mustLoc(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

func TestSchedulerRegistersJobsInLocation(t *testing.T) {
	loc := mustLoc(t)

	s, err := New(&fakeStore{}, loc)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	entries := s.cron.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	from := time.Date(2025, 3, 10, 23, 59, 30, 0, loc)
	next := entries[0].Schedule.Next(from)
	if want := time.Date(2025, 3, 11, 0, 0, 0, 0, loc); !next.Equal(want) {
		t.Fatalf("roster reset next = %v, want %v", next, want)
	}
}

func TestResetDueSameDayShop(t *testing.T) {
	loc := mustLoc(t)
	last := time.Date(2025, 3, 9, 18, 0, 0, 0, loc)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"during hours", time.Date(2025, 3, 10, 12, 0, 0, 0, loc), false},
		{"at closing", time.Date(2025, 3, 10, 18, 0, 0, 0, loc), true},
		{"late night", time.Date(2025, 3, 10, 23, 30, 0, 0, loc), true},
	}

	for _, tc := range cases {
		_, due, err := ResetDue("09:00", "18:00", &last, tc.now, loc)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if due != tc.want {
			t.Fatalf("%s: due = %v, want %v", tc.name, due, tc.want)
		}
	}
}

func TestOvernightShopKeepsRosterUntilClosing(t *testing.T) {
	loc := mustLoc(t)
	shopID := uuid.New()
	last := time.Date(2025, 3, 9, 6, 0, 0, 0, loc)
	store := &fakeStore{shops: []ShopHours{{
		ID:            shopID,
		OpeningTime:   "22:00",
		ClosingTime:   "06:00",
		RosterResetAt: &last,
	}}}

	s, err := New(store, loc)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for _, at := range []time.Time{
		time.Date(2025, 3, 9, 23, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 0, 30, 0, 0, loc),
		time.Date(2025, 3, 10, 5, 59, 0, 0, loc),
	} {
		now := at
		s.now = func() time.Time { return now }
		s.resetClosedShops()
		if _, ok := store.resets[shopID]; ok {
			t.Fatalf("roster reset at %v while the shop is open", at)
		}
	}

	closing := time.Date(2025, 3, 10, 6, 0, 0, 0, loc)
	s.now = func() time.Time { return closing }
	s.resetClosedShops()
	if got, ok := store.resets[shopID]; !ok || !got.Equal(closing) {
		t.Fatalf("reset = %v, %v; want %v", got, ok, closing)
	}

	delete(store.resets, shopID)
	later := closing.Add(time.Minute)
	s.now = func() time.Time { return later }
	s.resetClosedShops()
	if _, ok := store.resets[shopID]; ok {
		t.Fatal("roster reset twice for the same closing")
	}
}

func TestFirstResetWaitsForOpenShop(t *testing.T) {
	loc := mustLoc(t)

	now := time.Date(2025, 3, 10, 0, 30, 0, 0, loc)
	if _, due, err := ResetDue("22:00", "06:00", nil, now, loc); err != nil || due {
		t.Fatalf("due = %v, err = %v; want not due while open", due, err)
	}

	now = time.Date(2025, 3, 10, 7, 0, 0, 0, loc)
	closedAt, due, err := ResetDue("22:00", "06:00", nil, now, loc)
	if err != nil || !due {
		t.Fatalf("due = %v, err = %v; want due after closing", due, err)
	}
	if want := time.Date(2025, 3, 10, 6, 0, 0, 0, loc); !closedAt.Equal(want) {
		t.Fatalf("closedAt = %v, want %v", closedAt, want)
	}
}

func TestBadHoursSkipShop(t *testing.T) {
	good, bad := uuid.New(), uuid.New()
	store := &fakeStore{shops: []ShopHours{
		{ID: bad, OpeningTime: "9h", ClosingTime: "18:00"},
		{ID: good, OpeningTime: "09:00", ClosingTime: "18:00"},
	}}
	s, err := New(store, time.UTC)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s.now = func() time.Time { return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC) }

	s.resetClosedShops()

	if _, ok := store.resets[bad]; ok {
		t.Fatal("shop with malformed hours was reset")
	}
	if _, ok := store.resets[good]; !ok {
		t.Fatal("closed shop was not reset")
	}
}

func TestRunsUseInjectedClock(t *testing.T) {
	store := &fakeStore{}
	s, err := New(store, time.UTC)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.clearBreaks()

	if len(store.cleared) != 1 || !store.cleared[0].Equal(fixed) {
		t.Fatalf("cleared = %v", store.cleared)
	}
}

func TestFailuresAreSwallowed(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	s, err := New(store, time.UTC)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	s.resetClosedShops()
	s.clearBreaks()
}
