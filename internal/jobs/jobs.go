package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/shop-queue/internal/domain/hours"
)

// ShopHours é o mínimo de cada loja para decidir o reset da escala.
type ShopHours struct {
	ID            uuid.UUID
	OpeningTime   string
	ClosingTime   string
	RosterResetAt *time.Time
}

// Store é o que as rotinas precisam do banco.
type Store interface {
	ListShopHours(ctx context.Context) ([]ShopHours, error)
	// ResetShop zera as marcações diárias dos profissionais da loja e
	// registra closedAt como o último reset.
	ResetShop(ctx context.Context, shopID uuid.UUID, closedAt time.Time) (int64, error)
	// ClearExpiredBreaks encerra pausas cujo fim já passou.
	ClearExpiredBreaks(ctx context.Context, now time.Time) (int64, error)
}

type Scheduler struct {
	cron  *cron.Cron
	store Store
	loc   *time.Location
	now   func() time.Time
}

// New agenda as rotinas no fuso do negócio.
func New(store Store, loc *time.Location) (*Scheduler, error) {
	s := &Scheduler{
		cron:  cron.New(cron.WithLocation(loc)),
		store: store,
		loc:   loc,
		now:   time.Now,
	}

	if _, err := s.cron.AddFunc("* * * * *", s.resetClosedShops); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc("* * * * *", s.clearBreaks); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop espera as rotinas em execução terminarem.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// ResetDue devolve o fechamento mais recente já passado e se a escala da
// loja ainda não foi zerada depois dele. Loja aberta em now nunca é zerada
// antes do primeiro reset registrado.
func ResetDue(opening, closing string, lastReset *time.Time, now time.Time, loc *time.Location) (time.Time, bool, error) {
	now = now.In(loc)

	var closedAt time.Time
	open := false
	for d := -2; d <= 0; d++ {
		w, err := hours.WindowFor(opening, closing, now.AddDate(0, 0, d), loc)
		if err != nil {
			return time.Time{}, false, err
		}
		if !now.Before(w.Open) && now.Before(w.Close) {
			open = true
		}
		if !w.Close.After(now) && w.Close.After(closedAt) {
			closedAt = w.Close
		}
	}

	if closedAt.IsZero() {
		return time.Time{}, false, nil
	}
	if lastReset == nil {
		return closedAt, !open, nil
	}
	return closedAt, lastReset.Before(closedAt), nil
}

func (s *Scheduler) resetClosedShops() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shops, err := s.store.ListShopHours(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list shop hours failed")
		return
	}

	now := s.now()
	for _, sh := range shops {
		closedAt, due, err := ResetDue(sh.OpeningTime, sh.ClosingTime, sh.RosterResetAt, now, s.loc)
		if err != nil {
			log.Warn().Err(err).Str("shop_id", sh.ID.String()).Msg("skipping roster reset: bad hours")
			continue
		}
		if !due {
			continue
		}

		n, err := s.store.ResetShop(ctx, sh.ID, closedAt)
		if err != nil {
			log.Error().Err(err).Str("shop_id", sh.ID.String()).Msg("roster reset failed")
			continue
		}
		log.Info().Str("shop_id", sh.ID.String()).Int64("barbers", n).Time("closed_at", closedAt).Msg("roster reset done")
	}
}

func (s *Scheduler) clearBreaks() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := s.store.ClearExpiredBreaks(ctx, s.now())
	if err != nil {
		log.Error().Err(err).Msg("clear expired breaks failed")
		return
	}
	if n > 0 {
		log.Info().Int64("barbers", n).Msg("expired breaks cleared")
	}
}
