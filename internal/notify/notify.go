package notify

import (
	"context"

	"github.com/google/uuid"
)

type Kind string

const (
	KindNextInLine Kind = "next_in_line"
)

// Result diz se a mensagem saiu; Skipped vem com o motivo.
type Result struct {
	Sent   bool
	Reason string
}

func Sent() Result {
	return Result{Sent: true}
}

func Skipped(reason string) Result {
	return Result{Reason: reason}
}

type Notifier interface {
	Notify(ctx context.Context, entityID uuid.UUID, kind Kind) (Result, error)
}

// Contact é quem recebe a mensagem de uma entrada da fila.
type Contact struct {
	Name     string
	Phone    string
	ShopName string
}

type ContactLookup interface {
	ContactForEntry(ctx context.Context, entryID uuid.UUID) (*Contact, error)
}

type Noop struct{}

func (Noop) Notify(_ context.Context, _ uuid.UUID, _ Kind) (Result, error) {
	return Skipped("notifications disabled"), nil
}
