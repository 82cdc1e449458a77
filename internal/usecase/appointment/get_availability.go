package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/shop-queue/internal/domain/hours"
	"github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/dto"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/timezone"
	"github.com/BruksfildServices01/shop-queue/internal/tracing"
)

type AvailabilityInput struct {
	ShopID     uuid.UUID
	ServiceIDs []uuid.UUID
	Date       string
	BarberID   *uuid.UUID
}

type GetAvailability struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository, loc *time.Location) *GetAvailability {
	return &GetAvailability{repo: repo, loc: loc, now: time.Now}
}

// Execute recalcula tudo a cada chamada. Qualquer leitura que falhar derruba
// o cálculo inteiro: nunca devolvemos horários sem todas as restrições.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]dto.AvailableSlotDTO, error) {
	ctx, span := tracing.Start(ctx, "appointment.availability")
	defer span.End()

	if in.ShopID == uuid.Nil || len(in.ServiceIDs) == 0 || in.Date == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	date, err := timezone.ParseDate(in.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidRequest, "%v", err)
	}

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, notFoundOrUpstream("shop", err)
	}

	window, err := hours.WindowFor(shop.OpeningTime, shop.ClosingTime, date, uc.loc)
	if err != nil {
		return nil, err
	}

	minutes, _, err := resolveServices(ctx, uc.repo, shop.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	barbers, err := uc.repo.ListWorkingBarbers(ctx, shop.ID, in.BarberID)
	if err != nil {
		return nil, httperr.Upstream("barbers", err)
	}
	if len(barbers) == 0 {
		return []dto.AvailableSlotDTO{}, nil
	}

	ids := make([]uuid.UUID, 0, len(barbers))
	for _, b := range barbers {
		ids = append(ids, b.ID)
	}

	waiting, err := uc.repo.ListWaitingEntries(ctx, ids)
	if err != nil {
		return nil, httperr.Upstream("queue", err)
	}

	appts, err := uc.repo.ListBlockingAppointments(ctx, ids, window.Open, window.Close)
	if err != nil {
		return nil, httperr.Upstream("appointments", err)
	}

	staff := buildStaff(barbers, waiting, appts)

	slots := domain.FindSlots(domain.SlotQuery{
		Window:         window,
		Date:           date,
		Now:            uc.now().In(uc.loc),
		ServiceMinutes: minutes,
		Location:       uc.loc,
		MinAdvance:     time.Duration(shop.MinAdvanceMinutes) * time.Minute,
	}, staff)

	out := make([]dto.AvailableSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.AvailableSlotDTO{
			BarberID:   s.BarberID,
			BarberName: s.BarberName,
			Time:       s.Time(uc.loc),
			StartsAt:   s.Start,
		})
	}

	return out, nil
}

func buildStaff(
	barbers []models.Barber,
	waiting []models.QueueEntry,
	appts []models.Appointment,
) []domain.StaffAvailability {

	waitingBy := make(map[uuid.UUID][]models.QueueEntry, len(barbers))
	for _, e := range waiting {
		waitingBy[e.BarberID] = append(waitingBy[e.BarberID], e)
	}

	apptsBy := make(map[uuid.UUID][]models.Appointment, len(barbers))
	for _, a := range appts {
		apptsBy[a.BarberID] = append(apptsBy[a.BarberID], a)
	}

	staff := make([]domain.StaffAvailability, 0, len(barbers))
	for _, b := range barbers {
		staff = append(staff, domain.StaffAvailability{
			Barber:         b,
			BacklogMinutes: queue.EstimateBacklog(waitingBy[b.ID]),
			Appointments:   apptsBy[b.ID],
		})
	}
	return staff
}

// resolveServices soma a duração pedida. Ids repetidos contam uma vez só,
// como na associação gravada; um id que não é da loja invalida o pedido todo.
func resolveServices(
	ctx context.Context,
	repo domain.Repository,
	shopID uuid.UUID,
	ids []uuid.UUID,
) (int, []models.Service, error) {

	if len(ids) == 0 {
		return 0, nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	found, err := repo.ListServicesByIDs(ctx, shopID, ids)
	if err != nil {
		return 0, nil, httperr.Upstream("services", err)
	}

	byID := make(map[uuid.UUID]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	total := 0
	seen := make(map[uuid.UUID]bool, len(ids))
	services := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		s, ok := byID[id]
		if !ok {
			return 0, nil, httperr.ErrBusinessf(httperr.CodeInvalidServiceSet, "unknown service %s", id)
		}
		total += s.DurationMinutes
		services = append(services, s)
	}

	return total, services, nil
}

func notFoundOrUpstream(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusinessf(httperr.CodeNotFound, "%s not found", op)
	}
	return httperr.Upstream(op, err)
}
