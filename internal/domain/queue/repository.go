package queue

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/models"
)

type Repository interface {
	// -------- Leituras sem lock --------
	// Servem para descobrir o profissional antes de travar.
	GetEntry(
		ctx context.Context,
		shopID uuid.UUID,
		entryID uuid.UUID,
	) (*models.QueueEntry, error)

	GetAppointment(
		ctx context.Context,
		shopID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	// GetEntryForAppointment devolve a entrada criada no check-in.
	GetEntryForAppointment(
		ctx context.Context,
		shopID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.QueueEntry, error)

	GetBarber(
		ctx context.Context,
		shopID uuid.UUID,
		barberID uuid.UUID,
	) (*models.Barber, error)

	// ListWaiting devolve as entradas "waiting" com serviços, por posição.
	ListWaiting(
		ctx context.Context,
		barberID uuid.UUID,
	) ([]models.QueueEntry, error)

	ListForShop(
		ctx context.Context,
		shopID uuid.UUID,
		barberID *uuid.UUID,
		statuses []Status,
	) ([]models.QueueEntry, error)

	// -------- Escrita --------
	// WithStaffLock serializa todas as mutações da fila de um profissional.
	WithStaffLock(
		ctx context.Context,
		shopID uuid.UUID,
		barberID uuid.UUID,
		fn func(tx Tx) error,
	) error

	SaveInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error
}

// Tx enxerga a fila de um único profissional com o lock já adquirido.
type Tx interface {
	Barber() *models.Barber

	GetEntry(ctx context.Context, entryID uuid.UUID) (*models.QueueEntry, error)

	// ListWaiting devolve as entradas "waiting" ordenadas por posição.
	ListWaiting(ctx context.Context) ([]models.QueueEntry, error)

	HasInProgress(ctx context.Context) (bool, error)

	ResolveServices(ctx context.Context, serviceIDs []uuid.UUID) ([]models.Service, error)

	CreateEntry(ctx context.Context, entry *models.QueueEntry) error
	SaveEntry(ctx context.Context, entry *models.QueueEntry) error
	DeleteEntry(ctx context.Context, entry *models.QueueEntry) error

	// Agendamento vinculado à entrada.
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*models.Appointment, error)
	SaveAppointment(ctx context.Context, ap *models.Appointment) error

	CreateInvoice(ctx context.Context, inv *models.Invoice) error
}
