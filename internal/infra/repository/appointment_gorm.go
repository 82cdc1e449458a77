package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	queuedomain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetShopByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServicesByIDs(
	ctx context.Context,
	shopID uuid.UUID,
	ids []uuid.UUID,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND active = ? AND id IN ?", shopID, true, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Roster / fila
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWorkingBarbers(
	ctx context.Context,
	shopID uuid.UUID,
	barberID *uuid.UUID,
) ([]models.Barber, error) {

	q := r.db.WithContext(ctx).
		Where("shop_id = ? AND active = ? AND is_working_today = ?", shopID, true, true)

	if barberID != nil {
		q = q.Where("id = ?", *barberID)
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *AppointmentGormRepository) ListWaitingEntries(
	ctx context.Context,
	barberIDs []uuid.UUID,
) ([]models.QueueEntry, error) {

	var entries []models.QueueEntry
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("barber_id IN ? AND status = ?", barberIDs, string(queuedomain.StatusWaiting)).
		Order("queue_position ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	barberIDs []uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return listBlocking(r.db.WithContext(ctx), barberIDs, start, end)
}

func listBlocking(
	db *gorm.DB,
	barberIDs []uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := db.
		Select("id", "barber_id", "start_time", "end_time", "status").
		Where(
			"barber_id IN ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberIDs,
			domain.BlockingStatusStrings(),
			end,
			start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	shopID uuid.UUID,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	if phone != "" {
		err := r.db.WithContext(ctx).
			Where("shop_id = ? AND phone = ?", shopID, phone).
			First(&client).Error

		if err == nil {
			return &client, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	client = models.Client{
		ShopID: shopID,
		Name:   name,
		Phone:  phone,
		Email:  email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

type bookingTx struct {
	tx     *gorm.DB
	barber *models.Barber
}

func (b *bookingTx) Barber() *models.Barber { return b.barber }

func (b *bookingTx) ListBlockingAppointments(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return listBlocking(b.tx.WithContext(ctx), []uuid.UUID{b.barber.ID}, start, end)
}

func (b *bookingTx) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return b.tx.WithContext(ctx).
		Omit("Barber", "Client", "Services.*").
		Create(ap).Error
}

func (r *AppointmentGormRepository) WithBarberLock(
	ctx context.Context,
	shopID uuid.UUID,
	barberID uuid.UUID,
	fn func(tx domain.BookingTx) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		barber, err := lockBarber(tx, shopID, barberID)
		if err != nil {
			return err
		}
		return fn(&bookingTx{tx: tx, barber: barber})
	})
}

// lockBarber é o ponto de serialização por profissional: agenda e fila
// passam pelo mesmo SELECT ... FOR UPDATE.
func lockBarber(tx *gorm.DB, shopID, barberID uuid.UUID) (*models.Barber, error) {
	var barber models.Barber
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND shop_id = ?", barberID, shopID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	shopID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", appointmentID, shopID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	shopID uuid.UUID,
	barberID *uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Services").
		Where("shop_id = ? AND start_time >= ? AND start_time < ?", shopID, start, end)

	if barberID != nil {
		q = q.Where("barber_id = ?", *barberID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
