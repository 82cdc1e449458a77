package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Shop, error)

	// -------- Services --------
	// ListServicesByIDs devolve só os serviços ativos da loja; ids
	// desconhecidos simplesmente não aparecem.
	ListServicesByIDs(
		ctx context.Context,
		shopID uuid.UUID,
		ids []uuid.UUID,
	) ([]models.Service, error)

	// -------- Roster / fila --------
	ListWorkingBarbers(
		ctx context.Context,
		shopID uuid.UUID,
		barberID *uuid.UUID,
	) ([]models.Barber, error)

	ListWaitingEntries(
		ctx context.Context,
		barberIDs []uuid.UUID,
	) ([]models.QueueEntry, error)

	// ListBlockingAppointments: booked/checked_in/in_progress que tocam [start, end).
	ListBlockingAppointments(
		ctx context.Context,
		barberIDs []uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		shopID uuid.UUID,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Booking --------
	// WithBarberLock abre uma transação com o profissional travado.
	WithBarberLock(
		ctx context.Context,
		shopID uuid.UUID,
		barberID uuid.UUID,
		fn func(tx BookingTx) error,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		shopID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		shopID uuid.UUID,
		barberID *uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

type BookingTx interface {
	Barber() *models.Barber

	ListBlockingAppointments(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
