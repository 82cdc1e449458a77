package appointment

import "github.com/BruksfildServices01/shop-queue/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked     Status = "booked"
	StatusCheckedIn  Status = "checked_in"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// BlockingStatuses ocupam a agenda do profissional.
var BlockingStatuses = []Status{StatusBooked, StatusCheckedIn, StatusInProgress}

func (s Status) Blocks() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

func BlockingStatusStrings() []string {
	out := make([]string, 0, len(BlockingStatuses))
	for _, s := range BlockingStatuses {
		out = append(out, string(s))
	}
	return out
}

// ===============================
// Validations
// ===============================

// CanCheckIn: cliente chegou para um horário marcado
func CanCheckIn(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado. Depois do check-in
// ele segue a entrada da fila.
func CanCancel(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusBooked
}
