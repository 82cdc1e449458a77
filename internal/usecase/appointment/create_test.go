package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
)

func (f *fixture) create(now time.Time) *CreateAppointment {
	uc := NewCreateAppointment(f.repo, nil, f.loc)
	uc.now = func() time.Time { return now }
	return uc
}

func (f *fixture) booking(clock string) CreateAppointmentInput {
	return CreateAppointmentInput{
		ShopID:      f.shop.ID,
		BarberID:    f.barber.ID,
		ClientName:  "Carlos",
		ClientPhone: "+5511999990000",
		ServiceIDs:  []uuid.UUID{f.service.ID},
		Date:        "2026-03-10",
		Time:        clock,
	}
}

func TestCreateAppointmentBooksSlot(t *testing.T) {
	f := newFixture(t)
	now := f.at(9, 12, 0)

	ap, err := f.create(now).Execute(context.Background(), f.booking("10:00"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if ap.Status != string(domain.StatusBooked) {
		t.Fatalf("unexpected status %s", ap.Status)
	}
	if !ap.EndTime.Equal(f.at(10, 10, 40)) {
		t.Fatalf("unexpected end %s", ap.EndTime)
	}
	if len(ap.Services) != 1 {
		t.Fatalf("services not attached")
	}

	slots, err := f.availability(now).Execute(context.Background(), AvailabilityInput{
		ShopID:     f.shop.ID,
		ServiceIDs: []uuid.UUID{f.service.ID},
		Date:       "2026-03-10",
	})
	if err != nil {
		t.Fatalf("availability error: %v", err)
	}
	for _, s := range slots {
		if s.Time == "10:00" || s.Time == "09:30" || s.Time == "10:30" {
			t.Fatalf("booked time %s still offered", s.Time)
		}
	}
}

func TestCreateAppointmentRepeatedServiceStoredOnce(t *testing.T) {
	f := newFixture(t)

	in := f.booking("10:00")
	in.ServiceIDs = []uuid.UUID{f.service.ID, f.service.ID}

	ap, err := f.create(f.at(9, 12, 0)).Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(ap.Services) != 1 {
		t.Fatalf("services = %d, want 1", len(ap.Services))
	}
	if !ap.EndTime.Equal(f.at(10, 10, 40)) {
		t.Fatalf("end = %s, want one service duration", ap.EndTime)
	}
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	uc := f.create(f.at(9, 12, 0))

	if _, err := uc.Execute(context.Background(), f.booking("10:00")); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := uc.Execute(context.Background(), f.booking("10:30"))
	if !httperr.IsBusiness(err, httperr.CodeTimeConflict) {
		t.Fatalf("expected time_conflict, got %v", err)
	}
	if len(f.repo.appointments) != 1 {
		t.Fatalf("conflicting booking was stored")
	}
}

func TestCreateAppointmentRules(t *testing.T) {
	f := newFixture(t)
	f.shop.MinAdvanceMinutes = 60
	uc := f.create(f.at(10, 9, 30))

	if _, err := uc.Execute(context.Background(), f.booking("10:00")); !httperr.IsBusiness(err, httperr.CodeTooSoon) {
		t.Fatalf("expected too_soon, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), f.booking("16:30")); !httperr.IsBusiness(err, httperr.CodeOutsideWorkingHours) {
		t.Fatalf("expected outside_working_hours, got %v", err)
	}

	in := f.booking("11:00")
	in.ClientName = " "
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, httperr.CodeInvalidRequest) {
		t.Fatalf("expected invalid_request, got %v", err)
	}

	in = f.booking("11:00")
	in.Time = "11h"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, httperr.CodeInvalidRequest) {
		t.Fatalf("expected invalid_request for bad time, got %v", err)
	}
}

func TestAppointmentTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.create(f.at(9, 12, 0)).Execute(ctx, f.booking("10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled, err := NewCancelAppointment(f.repo, nil).Execute(ctx, f.shop.ID, nil, ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancelled appointment %+v", cancelled)
	}

	if _, err := NewMarkAppointmentNoShow(f.repo, nil).Execute(ctx, f.shop.ID, nil, ap.ID); !httperr.IsBusiness(err, httperr.CodeInvalidState) {
		t.Fatalf("cancelled appointment should not become no_show, got %v", err)
	}

	if _, err := NewCancelAppointment(f.repo, nil).Execute(ctx, f.shop.ID, nil, uuid.New()); !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestListAppointmentsByDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.create(f.at(9, 12, 0))

	if _, err := uc.Execute(ctx, f.booking("10:00")); err != nil {
		t.Fatalf("create: %v", err)
	}
	next := f.booking("10:00")
	next.Date = "2026-03-11"
	if _, err := uc.Execute(ctx, next); err != nil {
		t.Fatalf("create next day: %v", err)
	}

	list := NewListAppointments(f.repo, f.loc)

	day, err := list.ByDate(ctx, f.shop.ID, nil, f.at(10, 0, 0))
	if err != nil {
		t.Fatalf("ByDate: %v", err)
	}
	if len(day) != 1 || day[0].ClientName != "Carlos" {
		t.Fatalf("unexpected day listing %+v", day)
	}

	month, err := list.ByMonth(ctx, f.shop.ID, &f.barber.ID, 2026, 3)
	if err != nil {
		t.Fatalf("ByMonth: %v", err)
	}
	if len(month) != 2 {
		t.Fatalf("expected 2 appointments in month, got %d", len(month))
	}

	if _, err := list.ByMonth(ctx, f.shop.ID, nil, 2026, 13); !httperr.IsBusiness(err, httperr.CodeInvalidRequest) {
		t.Fatalf("expected invalid_request for month 13, got %v", err)
	}
}
