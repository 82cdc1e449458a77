package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID         uuid.UUID `json:"id"`
	BarberID   uuid.UUID `json:"barber_id"`
	BarberName string    `json:"barber_name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name"`
	Services   []string  `json:"services"`
}
