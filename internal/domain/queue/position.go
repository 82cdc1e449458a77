package queue

import "github.com/BruksfildServices01/shop-queue/internal/models"

// NextPosition devolve a posição de quem entra na fila: max+1, ou 1 se vazia.
// waiting deve conter só entradas "waiting" de um mesmo profissional.
func NextPosition(waiting []models.QueueEntry) int {
	maxPos, ok := bounds(waiting, func(a, b int) bool { return a > b })
	if !ok {
		return 1
	}
	return maxPos + 1
}

// RequeuePosition coloca o cliente na frente de todos: min-1, ou 1 se vazia.
// Posições podem ficar negativas; só a ordem relativa importa.
func RequeuePosition(waiting []models.QueueEntry) int {
	minPos, ok := bounds(waiting, func(a, b int) bool { return a < b })
	if !ok {
		return 1
	}
	return minPos - 1
}

// Front devolve a entrada de menor posição, ou nil.
func Front(waiting []models.QueueEntry) *models.QueueEntry {
	var front *models.QueueEntry
	for i := range waiting {
		e := &waiting[i]
		if Status(e.Status) != StatusWaiting || e.QueuePosition == nil {
			continue
		}
		if front == nil || *e.QueuePosition < *front.QueuePosition {
			front = e
		}
	}
	return front
}

func bounds(waiting []models.QueueEntry, better func(a, b int) bool) (int, bool) {
	found := false
	best := 0
	for _, e := range waiting {
		if Status(e.Status) != StatusWaiting || e.QueuePosition == nil {
			continue
		}
		if !found || better(*e.QueuePosition, best) {
			best = *e.QueuePosition
			found = true
		}
	}
	return best, found
}
