package queue

import (
	"time"

	"github.com/BruksfildServices01/shop-queue/internal/models"
)

// PerEntryBufferMinutes é somado uma vez por cliente, não por serviço.
const PerEntryBufferMinutes = 5

// EstimateBacklog soma a duração dos serviços de quem está esperando mais um
// buffer por cliente. O atendimento em andamento não entra na conta.
func EstimateBacklog(waiting []models.QueueEntry) int {
	total := 0
	for _, e := range waiting {
		if Status(e.Status) != StatusWaiting {
			continue
		}
		for _, s := range e.Services {
			if s.DurationMinutes > 0 {
				total += s.DurationMinutes
			}
		}
		total += PerEntryBufferMinutes
	}
	return total
}

func BacklogDuration(waiting []models.QueueEntry) time.Duration {
	return time.Duration(EstimateBacklog(waiting)) * time.Minute
}
