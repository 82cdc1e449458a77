package appointment

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/domain/hours"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/timezone"
)

const (
	SlotGranularity        = 30 * time.Minute
	InterAppointmentBuffer = 10 * time.Minute
)

// StaffAvailability é tudo o que o cálculo precisa saber de um profissional.
type StaffAvailability struct {
	Barber         models.Barber
	BacklogMinutes int
	// Agendamentos do dia; status fora de BlockingStatuses são ignorados.
	Appointments []models.Appointment
}

type SlotQuery struct {
	Window         hours.Window
	Date           time.Time
	Now            time.Time
	ServiceMinutes int
	Location       *time.Location
	MinAdvance     time.Duration
}

type Slot struct {
	BarberID   uuid.UUID
	BarberName string
	Start      time.Time
}

// Time formata o horário no fuso do negócio.
func (s Slot) Time(loc *time.Location) string {
	return s.Start.In(loc).Format(timezone.ClockLayout)
}

// FindSlots devolve os horários livres de todos os profissionais, ordenados
// por horário e depois pelo nome do profissional. Função pura.
func FindSlots(q SlotQuery, staff []StaffAvailability) []Slot {
	if q.ServiceMinutes <= 0 {
		return nil
	}

	loc := q.Location
	if loc == nil {
		loc = time.UTC
	}

	span := time.Duration(q.ServiceMinutes)*time.Minute + InterAppointmentBuffer

	var slots []Slot
	for _, s := range staff {
		if !s.Barber.IsWorkingToday {
			continue
		}

		earliest, ok := earliestStart(q, s, loc)
		if !ok {
			continue
		}

		busy := blocking(s.Appointments)

		t := roundUp(earliest, loc)
		for !t.Add(span).After(q.Window.Close) {
			if c := firstConflict(t, span, busy); c != nil {
				next := c.EndTime.Add(InterAppointmentBuffer)
				if next.Before(t) {
					next = t
				}
				t = roundUp(next, loc)
				continue
			}

			slots = append(slots, Slot{
				BarberID:   s.Barber.ID,
				BarberName: s.Barber.Name,
				Start:      t,
			})
			t = t.Add(SlotGranularity)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		if slots[i].BarberName != slots[j].BarberName {
			return slots[i].BarberName < slots[j].BarberName
		}
		return slots[i].BarberID.String() < slots[j].BarberID.String()
	})

	return slots
}

// earliestStart aplica os pisos: abertura, agora, fim da pausa e fila atual.
// Retorna false quando o profissional não pode atender nessa janela.
func earliestStart(q SlotQuery, s StaffAvailability, loc *time.Location) (time.Time, bool) {
	earliest := q.Window.Open

	// Janela já em curso (hoje, ou a madrugada de uma janela que vira o dia).
	live := timezone.SameDay(q.Now.In(loc), q.Date.In(loc)) || !q.Now.Before(q.Window.Open)

	if live && q.Now.After(earliest) {
		earliest = q.Now
	}

	if q.MinAdvance > 0 {
		if floor := q.Now.Add(q.MinAdvance); floor.After(earliest) {
			earliest = floor
		}
	}

	if s.Barber.BreakActiveAt(q.Now) {
		if s.Barber.BreakEndTime == nil {
			// Pausa sem fim previsto: fora da agenda enquanto a janela está em curso.
			if live {
				return time.Time{}, false
			}
		} else if s.Barber.BreakEndTime.After(earliest) {
			earliest = *s.Barber.BreakEndTime
		}
	}

	if live && s.BacklogMinutes > 0 {
		if clear := q.Now.Add(time.Duration(s.BacklogMinutes) * time.Minute); clear.After(earliest) {
			earliest = clear
		}
	}

	return earliest, !earliest.After(q.Window.Close)
}

func blocking(appts []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(appts))
	for _, a := range appts {
		if Status(a.Status).Blocks() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func firstConflict(t time.Time, span time.Duration, appts []models.Appointment) *models.Appointment {
	end := t.Add(span)
	for i := range appts {
		a := &appts[i]
		if t.Before(a.EndTime) && end.After(a.StartTime) {
			return a
		}
	}
	return nil
}

// Overlaps é o mesmo teste usado na confirmação de um agendamento.
func Overlaps(start time.Time, minutes int, appts []models.Appointment) bool {
	span := time.Duration(minutes)*time.Minute + InterAppointmentBuffer
	return firstConflict(start, span, blocking(appts)) != nil
}

// roundUp leva t ao próximo múltiplo de SlotGranularity contado a partir da
// hora cheia, zerando segundos.
func roundUp(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
	offset := t.Sub(hour)
	steps := (offset + SlotGranularity - 1) / SlotGranularity
	return hour.Add(steps * SlotGranularity)
}

// OnGrid indica se t cai exatamente numa fronteira da grade.
func OnGrid(t time.Time, loc *time.Location) bool {
	return roundUp(t, loc).Equal(t)
}
