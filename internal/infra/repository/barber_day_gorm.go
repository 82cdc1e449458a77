package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-queue/internal/jobs"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

// BarberDayGormRepository mantém as marcações diárias dos profissionais.
type BarberDayGormRepository struct {
	db *gorm.DB
}

func NewBarberDayGormRepository(db *gorm.DB) *BarberDayGormRepository {
	return &BarberDayGormRepository{db: db}
}

func (r *BarberDayGormRepository) ListShopHours(ctx context.Context) ([]jobs.ShopHours, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Select("id", "opening_time", "closing_time", "roster_reset_at").
		Find(&shops).Error; err != nil {
		return nil, err
	}

	out := make([]jobs.ShopHours, 0, len(shops))
	for _, s := range shops {
		out = append(out, jobs.ShopHours{
			ID:            s.ID,
			OpeningTime:   s.OpeningTime,
			ClosingTime:   s.ClosingTime,
			RosterResetAt: s.RosterResetAt,
		})
	}
	return out, nil
}

func (r *BarberDayGormRepository) ResetShop(ctx context.Context, shopID uuid.UUID, closedAt time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Barber{}).
			Where("shop_id = ? AND (is_working_today = ? OR is_on_break = ?)", shopID, true, true).
			Updates(map[string]interface{}{
				"is_working_today": false,
				"is_on_break":      false,
				"break_end_time":   nil,
			})
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected

		return tx.Model(&models.Shop{}).
			Where("id = ?", shopID).
			Update("roster_reset_at", closedAt).Error
	})
	return n, err
}

func (r *BarberDayGormRepository) ClearExpiredBreaks(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("is_on_break = ? AND break_end_time IS NOT NULL AND break_end_time <= ?", true, now).
		Updates(map[string]interface{}{
			"is_on_break":    false,
			"break_end_time": nil,
		})
	return res.RowsAffected, res.Error
}

var _ jobs.Store = (*BarberDayGormRepository)(nil)
