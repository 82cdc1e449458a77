package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type job struct {
	entityID uuid.UUID
	kind     Kind
}

// Dispatcher envia fora da transação. Falha de envio só gera log: o estado
// da fila já foi gravado e é a fonte da verdade.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	queue    chan job
	done     chan struct{}
}

func NewDispatcher(n Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		timeout:  10 * time.Second,
		queue:    make(chan job, 100),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for j := range d.queue {
		d.send(j)
	}
}

func (d *Dispatcher) send(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	res, err := d.notifier.Notify(ctx, j.entityID, j.kind)
	if err != nil {
		log.Warn().Err(err).
			Str("entry_id", j.entityID.String()).
			Str("kind", string(j.kind)).
			Msg("notification failed")
		return
	}
	if !res.Sent {
		log.Info().
			Str("entry_id", j.entityID.String()).
			Str("reason", res.Reason).
			Msg("notification skipped")
	}
}

func (d *Dispatcher) Dispatch(entityID uuid.UUID, kind Kind) {
	if d == nil {
		return
	}
	select {
	case d.queue <- job{entityID: entityID, kind: kind}:
	default:
		log.Warn().Str("entry_id", entityID.String()).Msg("notify queue full, dropping")
	}
}

func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	close(d.queue)
	<-d.done
}
