package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/shop-queue/internal/httperr"
)

// Window é o expediente de um dia: [Open, Close).
type Window struct {
	Open  time.Time
	Close time.Time
}

func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Open) && !end.After(w.Close)
}

// Clock é um horário "HH:MM" já validado.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock aceita "H:MM" ou "HH:MM" (00:00–23:59).
func ParseClock(hm string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(hm), ":")
	if len(parts) != 2 || len(parts[1]) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return Clock{}, httperr.ErrBusinessf(httperr.CodeInvalidConfiguration, "malformed time %q", hm)
	}

	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, httperr.ErrBusinessf(httperr.CodeInvalidConfiguration, "malformed time %q", hm)
	}

	return Clock{Hour: h, Minute: m}, nil
}

// At posiciona o horário no dia de date, no fuso loc.
func (c Clock) At(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// WindowFor calcula abertura e fechamento de date no fuso do negócio.
// Fechamento <= abertura significa que a loja fecha no dia seguinte.
func WindowFor(opening, closing string, date time.Time, loc *time.Location) (Window, error) {
	o, err := ParseClock(opening)
	if err != nil {
		return Window{}, err
	}
	c, err := ParseClock(closing)
	if err != nil {
		return Window{}, err
	}

	open := o.At(date, loc)
	close := c.At(date, loc)
	if !close.After(open) {
		close = close.AddDate(0, 0, 1)
	}

	return Window{Open: open, Close: close}, nil
}
