package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop é o tenant: barbearia, salão ou food truck.
type Shop struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Name    string    `gorm:"size:100;not null" json:"name"`
	Slug    string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Kind    string    `gorm:"size:20;default:'barbershop'" json:"kind"`
	Phone   string    `gorm:"size:20" json:"phone"`
	Address string    `gorm:"size:255" json:"address"`
	LogoURL string    `gorm:"size:255" json:"logo_url"`

	// "HH:MM" no fuso do negócio; fechamento <= abertura vira o dia seguinte.
	OpeningTime string `gorm:"size:5;not null;default:'09:00'" json:"opening_time"`
	ClosingTime string `gorm:"size:5;not null;default:'18:00'" json:"closing_time"`

	MinAdvanceMinutes int `gorm:"default:0" json:"min_advance_minutes"`

	// Último fechamento em que a escala do dia foi zerada.
	RosterResetAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
