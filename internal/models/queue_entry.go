package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueueEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID   uuid.UUID `gorm:"type:uuid;index;not null" json:"shop_id"`
	BarberID uuid.UUID `gorm:"type:uuid;index;not null" json:"barber_id"`
	Barber   Barber    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	Status string `gorm:"size:20;not null;default:'waiting';index" json:"status"`

	// Só tem significado enquanto status = waiting.
	QueuePosition *int `json:"queue_position"`

	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id"`

	// Presença do timestamp = aviso de "você é o próximo" já enviado.
	NotifiedAt *time.Time `json:"notified_at"`

	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Services []Service `gorm:"many2many:queue_entry_services;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *QueueEntry) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (q QueueEntry) Position() int {
	if q.QueuePosition == nil {
		return 0
	}
	return *q.QueuePosition
}
