package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/notify"
)

type QueueGormRepository struct {
	db *gorm.DB
}

func NewQueueGormRepository(db *gorm.DB) *QueueGormRepository {
	return &QueueGormRepository{db: db}
}

// --------------------------------------------------
// Leituras
// --------------------------------------------------

func (r *QueueGormRepository) GetEntry(
	ctx context.Context,
	shopID uuid.UUID,
	entryID uuid.UUID,
) (*models.QueueEntry, error) {

	var e models.QueueEntry
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", entryID, shopID).
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *QueueGormRepository) GetAppointment(
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

func (r *QueueGormRepository) GetEntryForAppointment(
	ctx context.Context,
	shopID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.QueueEntry, error) {

	var e models.QueueEntry
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ? AND shop_id = ?", appointmentID, shopID).
		Order("created_at DESC").
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *QueueGormRepository) GetBarber(
	ctx context.Context,
	shopID uuid.UUID,
	barberID uuid.UUID,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", barberID, shopID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *QueueGormRepository) ListWaiting(
	ctx context.Context,
	barberID uuid.UUID,
) ([]models.QueueEntry, error) {
	return listWaiting(r.db.WithContext(ctx), barberID)
}

func listWaiting(db *gorm.DB, barberID uuid.UUID) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := db.
		Preload("Services").
		Where("barber_id = ? AND status = ?", barberID, string(domain.StatusWaiting)).
		Order("queue_position ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *QueueGormRepository) ListForShop(
	ctx context.Context,
	shopID uuid.UUID,
	barberID *uuid.UUID,
	statuses []domain.Status,
) ([]models.QueueEntry, error) {

	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}

	q := r.db.WithContext(ctx).
		Preload("Services").
		Where("shop_id = ? AND status IN ?", shopID, names)

	if barberID != nil {
		q = q.Where("barber_id = ?", *barberID)
	}

	var entries []models.QueueEntry
	if err := q.
		Order("barber_id ASC").
		Order("queue_position ASC NULLS FIRST").
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ContactForEntry alimenta o notificador de SMS.
func (r *QueueGormRepository) ContactForEntry(
	ctx context.Context,
	entryID uuid.UUID,
) (*notify.Contact, error) {

	var row struct {
		ClientName  string
		ClientPhone string
		ShopName    string
	}

	if err := r.db.WithContext(ctx).
		Table("queue_entries").
		Select("queue_entries.client_name, queue_entries.client_phone, shops.name AS shop_name").
		Joins("JOIN shops ON shops.id = queue_entries.shop_id").
		Where("queue_entries.id = ?", entryID).
		Take(&row).Error; err != nil {
		return nil, err
	}

	return &notify.Contact{
		Name:     row.ClientName,
		Phone:    row.ClientPhone,
		ShopName: row.ShopName,
	}, nil
}

func (r *QueueGormRepository) SaveInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

// --------------------------------------------------
// Transação por profissional
// --------------------------------------------------

func (r *QueueGormRepository) WithStaffLock(
	ctx context.Context,
	shopID uuid.UUID,
	barberID uuid.UUID,
	fn func(tx domain.Tx) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		barber, err := lockBarber(tx, shopID, barberID)
		if err != nil {
			return err
		}
		return fn(&queueTx{tx: tx, barber: barber})
	})
}

type queueTx struct {
	tx     *gorm.DB
	barber *models.Barber
}

func (q *queueTx) Barber() *models.Barber { return q.barber }

func (q *queueTx) GetEntry(ctx context.Context, entryID uuid.UUID) (*models.QueueEntry, error) {
	var e models.QueueEntry
	if err := q.tx.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND barber_id = ?", entryID, q.barber.ID).
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (q *queueTx) ListWaiting(ctx context.Context) ([]models.QueueEntry, error) {
	return listWaiting(q.tx.WithContext(ctx), q.barber.ID)
}

func (q *queueTx) HasInProgress(ctx context.Context) (bool, error) {
	var count int64
	if err := q.tx.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("barber_id = ? AND status = ?", q.barber.ID, string(domain.StatusInProgress)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (q *queueTx) ResolveServices(ctx context.Context, ids []uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	if err := q.tx.WithContext(ctx).
		Where("shop_id = ? AND active = ? AND id IN ?", q.barber.ShopID, true, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// CreateEntry grava a entrada e a associação com os serviços (só a tabela
// de junção; os serviços já existem).
func (q *queueTx) CreateEntry(ctx context.Context, e *models.QueueEntry) error {
	return q.tx.WithContext(ctx).
		Omit("Barber", "Services.*").
		Create(e).Error
}

func (q *queueTx) SaveEntry(ctx context.Context, e *models.QueueEntry) error {
	return q.tx.WithContext(ctx).
		Omit(clause.Associations).
		Save(e).Error
}

func (q *queueTx) DeleteEntry(ctx context.Context, e *models.QueueEntry) error {
	db := q.tx.WithContext(ctx)
	if err := db.Model(e).Association("Services").Clear(); err != nil {
		return err
	}
	return db.Delete(e).Error
}

func (q *queueTx) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*models.Appointment, error) {
	var ap models.Appointment
	if err := q.tx.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where("id = ? AND barber_id = ?", appointmentID, q.barber.ID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (q *queueTx) SaveAppointment(ctx context.Context, ap *models.Appointment) error {
	return q.tx.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

func (q *queueTx) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	return q.tx.WithContext(ctx).Create(inv).Error
}

// Compile-time checks
var (
	_ domain.Repository    = (*QueueGormRepository)(nil)
	_ domain.Tx            = (*queueTx)(nil)
	_ notify.ContactLookup = (*QueueGormRepository)(nil)
)
