package dto

import (
	"time"

	"github.com/google/uuid"
)

type QueueEntryDTO struct {
	ID            uuid.UUID  `json:"id"`
	BarberID      uuid.UUID  `json:"barber_id"`
	ClientName    string     `json:"client_name"`
	Status        string     `json:"status"`
	QueuePosition *int       `json:"queue_position"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Notified      bool       `json:"notified"`
	Services      []string   `json:"services"`
	CreatedAt     time.Time  `json:"created_at"`
}

type WaitEstimateDTO struct {
	BarberID       uuid.UUID `json:"barberId"`
	BarberName     string    `json:"barberName"`
	Waiting        int       `json:"waiting"`
	BacklogMinutes int       `json:"backlogMinutes"`
	Serving        bool      `json:"serving"`
}
