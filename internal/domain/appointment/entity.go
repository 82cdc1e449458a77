package appointment

import (
	"time"

	"github.com/BruksfildServices01/shop-queue/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func CheckIn(ap *models.Appointment, now time.Time) error {
	if err := CanCheckIn(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCheckedIn)
	ap.CheckedInAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// FollowQueue alinha o agendamento ao novo status da entrada da fila
// vinculada. Retorna false quando não há nada a mudar.
func FollowQueue(ap *models.Appointment, entryStatus string, now time.Time) bool {
	current := Status(ap.Status)

	switch entryStatus {
	case "in_progress":
		if current == StatusCheckedIn {
			ap.Status = string(StatusInProgress)
			return true
		}
	case "done":
		if current == StatusCheckedIn || current == StatusInProgress {
			ap.Status = string(StatusCompleted)
			ap.CompletedAt = &now
			return true
		}
	case "no_show":
		if current == StatusCheckedIn {
			ap.Status = string(StatusNoShow)
			return true
		}
	case "waiting":
		if current == StatusNoShow && ap.CheckedInAt != nil {
			ap.Status = string(StatusCheckedIn)
			return true
		}
	}

	return false
}

// TotalDuration soma a duração dos serviços, em minutos.
func TotalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}

func TotalPrice(services []models.Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	return total
}
