package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvoicePending = "pending"
	InvoiceOpen    = "open"
	InvoiceFailed  = "failed"
)

type Invoice struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID       uuid.UUID `gorm:"type:uuid;index;not null" json:"shop_id"`
	QueueEntryID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"queue_entry_id"`

	ClientName string  `gorm:"size:100" json:"client_name"`
	Amount     float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency   string  `gorm:"size:3;not null" json:"currency"`
	Status     string  `gorm:"size:20;not null;default:'pending'" json:"status"`

	Provider    string `gorm:"size:20" json:"provider"`
	ProviderRef string `gorm:"size:255" json:"provider_ref"`
	CheckoutURL string `gorm:"size:512" json:"checkout_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
