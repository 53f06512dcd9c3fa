package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookReservationInput struct {
	SalonID uint
	StaffID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Date  string
	Time  string
	Notes string

	// Booked by a staff member (dashboard) instead of the public page.
	ActorStaffID *uint
}

// ======================================================
// USE CASE
// ======================================================

type BookReservation struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewBookReservation(
	repo domain.Repository,
	cache *cache.AvailabilityCache,
	audit *audit.Dispatcher,
) *BookReservation {
	return &BookReservation{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookReservation) Execute(
	ctx context.Context,
	in BookReservationInput,
) (*models.Reservation, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	now := timezone.NowIn(salon.Timezone)
	if start.Before(now) {
		return nil, httperr.ErrBusiness(httperr.CodePastDate)
	}

	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	notBefore := now.Add(time.Duration(minAdvance) * time.Minute)
	if start.Before(notBefore) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeEmptyServices)
	}

	services, err := uc.repo.ListServices(ctx, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	totalMin := 0
	totalPrice := 0.0
	for _, s := range services {
		totalMin += s.DurationMin
		totalPrice += s.Price
	}
	end := start.Add(time.Duration(totalMin) * time.Minute)

	if _, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeStaffNotFound)
	}

	// ------------------------------------------------------
	// Availability re-check at the instant of booking. The
	// window check and the slot check answer with different
	// errors so the caller can tell "never bookable" from
	// "lost the slot".
	// ------------------------------------------------------

	all, err := uc.repo.ListWindowsForDate(ctx, in.StaffID, start)
	if err != nil {
		return nil, err
	}
	windows := domain.EffectiveWindows(all, start)
	if len(windows) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeStaffUnavailable)
	}
	if !domain.WithinWindows(windows, start, end) {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	blocking := domain.BlockingStatuses(salon.PendingBlocksSlots)

	dayStart, dayEnd := timezone.DayRange(start)
	busy, err := uc.repo.ListBusyIntervals(ctx, in.StaffID, dayStart, dayEnd, blocking)
	if err != nil {
		return nil, err
	}

	granularity := time.Duration(salon.SlotGranularityMinutes) * time.Minute
	if granularity <= 0 {
		granularity = 15 * time.Minute
	}

	duration := time.Duration(totalMin) * time.Minute
	slots := domain.ComputeSlots(windows, busy, start, duration, granularity, notBefore)
	if !domain.Contains(slots, start) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	items := make([]models.ReservationService, 0, len(services))
	for i, s := range services {
		items = append(items, models.ReservationService{
			ServiceID:   s.ID,
			Position:    i,
			Name:        s.Name,
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
	}

	reservation := &models.Reservation{
		SalonID:          in.SalonID,
		StaffID:          in.StaffID,
		ClientID:         client.ID,
		Services:         items,
		TotalDurationMin: totalMin,
		TotalPrice:       totalPrice,
		StartTime:        start,
		EndTime:          end,
		Status:           string(domain.InitialStatus(salon.AutoConfirm)),
		Notes:            in.Notes,
	}

	// Conflict check + insert as one atomic unit; a concurrent
	// writer for an overlapping window gets slot_unavailable.
	if err := uc.repo.CreateReservation(ctx, reservation, blocking); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.StaffID, start.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		StaffID:  in.ActorStaffID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &reservation.ID,
	})

	return reservation, nil
}
