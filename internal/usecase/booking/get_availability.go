package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	cache *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeEmptyServices)
	}

	services, err := uc.repo.ListServices(ctx, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	totalMin := 0
	for _, s := range services {
		totalMin += s.DurationMin
	}
	duration := time.Duration(totalMin) * time.Minute

	if _, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeStaffNotFound)
	}

	loc := timezone.Location(salon.Timezone)
	date := in.Date.In(loc)
	dateKey := date.Format("2006-01-02")

	if slots, ok := uc.cache.Get(ctx, in.StaffID, dateKey, totalMin); ok {
		return slots, nil
	}

	all, err := uc.repo.ListWindowsForDate(ctx, in.StaffID, date)
	if err != nil {
		return nil, err
	}
	windows := domain.EffectiveWindows(all, date)
	if len(windows) == 0 {
		// Fully closed day: an empty answer, not an error.
		return []domain.TimeSlot{}, nil
	}

	dayStart, dayEnd := timezone.DayRange(date)
	busy, err := uc.repo.ListBusyIntervals(
		ctx,
		in.StaffID,
		dayStart,
		dayEnd,
		domain.BlockingStatuses(salon.PendingBlocksSlots),
	)
	if err != nil {
		return nil, err
	}

	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	notBefore := timezone.NowIn(salon.Timezone).Add(time.Duration(minAdvance) * time.Minute)

	granularity := time.Duration(salon.SlotGranularityMinutes) * time.Minute
	if granularity <= 0 {
		granularity = 15 * time.Minute
	}

	slots := domain.ComputeSlots(windows, busy, date, duration, granularity, notBefore)

	uc.cache.Set(ctx, in.StaffID, dateKey, totalMin, slots)

	return slots, nil
}
