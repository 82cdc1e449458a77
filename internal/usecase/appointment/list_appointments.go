package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/shop-queue/internal/dto"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointments(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
		loc:  loc,
	}
}

// ByDate lista os agendamentos que começam no dia, no fuso do negócio.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	shopID uuid.UUID,
	barberID *uuid.UUID,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	d := date.In(uc.loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, uc.loc)
	return uc.period(ctx, shopID, barberID, start, start.AddDate(0, 0, 1))
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	shopID uuid.UUID,
	barberID *uuid.UUID,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	return uc.period(ctx, shopID, barberID, start, start.AddDate(0, 1, 0))
}

func (uc *ListAppointments) period(
	ctx context.Context,
	shopID uuid.UUID,
	barberID *uuid.UUID,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, shopID, barberID, start, end)
	if err != nil {
		return nil, httperr.Upstream("appointments", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(ap))
	}

	return out, nil
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, s.Name)
	}

	return dto.AppointmentListDTO{
		ID:         ap.ID,
		BarberID:   ap.BarberID,
		BarberName: ap.Barber.Name,
		StartTime:  ap.StartTime,
		EndTime:    ap.EndTime,
		Status:     ap.Status,
		ClientName: ap.Client.Name,
		Services:   names,
	}
}
