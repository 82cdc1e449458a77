package dto

import (
	"time"

	"github.com/google/uuid"
)

type AvailableSlotDTO struct {
	BarberID   uuid.UUID `json:"barberId"`
	BarberName string    `json:"barberName"`
	Time       string    `json:"time"`
	StartsAt   time.Time `json:"startsAt"`
}

type AvailabilityResponse struct {
	AvailableSlots []AvailableSlotDTO `json:"availableSlots"`
}
