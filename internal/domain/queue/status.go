package queue

import "github.com/BruksfildServices01/shop-queue/internal/httperr"

// ===============================
// Queue Entry Status
// ===============================

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusNoShow     Status = "no_show"
)

// ===============================
// Transitions
// ===============================

// waiting → in_progress
func CanStart(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// in_progress → done
func CanComplete(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// waiting → no_show
func CanMarkNoShow(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// no_show → waiting
func CanRequeue(current Status) error {
	if current != StatusNoShow {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// Remoção só fora do atendimento.
func CanDelete(current Status) error {
	switch current {
	case StatusWaiting, StatusNoShow, StatusDone:
		return nil
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

func InitialStatus() Status {
	return StatusWaiting
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusWaiting, StatusInProgress, StatusDone, StatusNoShow:
		return st, true
	}
	return "", false
}
