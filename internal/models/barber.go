package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Barber struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID uuid.UUID `gorm:"type:uuid;index;not null" json:"shop_id"`
	Shop   Shop      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Phone     string `gorm:"size:20" json:"phone"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`
	Active    bool   `gorm:"default:true" json:"active"`

	IsWorkingToday bool       `gorm:"default:false" json:"is_working_today"`
	IsOnBreak      bool       `gorm:"default:false" json:"is_on_break"`
	BreakEndTime   *time.Time `json:"break_end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BreakActiveAt tolera flags velhas: uma pausa cujo fim já passou não conta.
func (b *Barber) BreakActiveAt(now time.Time) bool {
	if !b.IsOnBreak {
		return false
	}
	if b.BreakEndTime == nil {
		return true
	}
	return b.BreakEndTime.After(now)
}
