package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/trust"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ChangeStatusInput struct {
	SalonID       uint
	ReservationID uint
	NewStatus     string
	ActorStaffID  uint
}

type ChangeReservationStatus struct {
	repo     domain.Repository
	cache    *cache.AvailabilityCache
	audit    *audit.Dispatcher
	trustCfg trust.Config
}

func NewChangeReservationStatus(
	repo domain.Repository,
	cache *cache.AvailabilityCache,
	audit *audit.Dispatcher,
	trustCfg trust.Config,
) *ChangeReservationStatus {
	return &ChangeReservationStatus{
		repo:     repo,
		cache:    cache,
		audit:    audit,
		trustCfg: trustCfg,
	}
}

func (uc *ChangeReservationStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Reservation, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	reservation, err := uc.repo.GetReservationForSalon(ctx, in.ReservationID, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	to := domain.Status(in.NewStatus)
	if !domain.IsValidStatus(to) {
		return nil, httperr.ErrTransition(reservation.Status, in.NewStatus)
	}

	from := domain.Status(reservation.Status)
	wasLateMarked := reservation.IsLateMarked

	now := timezone.NowIn(salon.Timezone)
	result, err := domain.Transition(reservation, to, now)
	if err != nil {
		return nil, err
	}

	ev := uc.trustEventFor(reservation, result, now)

	if err := uc.repo.UpdateReservationStatus(ctx, reservation, from, wasLateMarked, ev); err != nil {
		return nil, err
	}

	// key by the salon-local date, matching how availability cached it
	localStart := reservation.StartTime.In(timezone.Location(salon.Timezone))
	uc.cache.Invalidate(ctx, reservation.StaffID, localStart.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		StaffID:  &in.ActorStaffID,
		Action:   "reservation_" + in.NewStatus,
		Entity:   "reservation",
		EntityID: &reservation.ID,
		Metadata: map[string]string{"from": string(from), "to": in.NewStatus},
	})

	return reservation, nil
}

// trustEventFor maps a successful transition to its ledger entry, or nil.
// Emission is at-most-once by construction: lateness only on the latching
// transition, no-show and completed-on-time only on entering a terminal
// state, which can never be left again.
func (uc *ChangeReservationStatus) trustEventFor(
	r *models.Reservation,
	result *domain.TransitionResult,
	now time.Time,
) *models.ScoreEvent {

	var kind string
	switch {
	case result.To == domain.StatusNoShow:
		kind = trust.KindNoShow
	case result.LatchedLate:
		kind = trust.KindLate
	case result.To == domain.StatusCompleted && !r.IsLateMarked:
		kind = trust.KindCompletedOnTime
	default:
		return nil
	}

	meta, _ := json.Marshal(map[string]any{
		"reservation_id": r.ID,
		"salon_id":       r.SalonID,
		"from":           string(result.From),
		"to":             string(result.To),
		"at":             now.Format(time.RFC3339),
	})

	return &models.ScoreEvent{
		ClientID:      r.ClientID,
		Kind:          kind,
		Delta:         uc.trustCfg.DeltaFor(kind),
		ReservationID: &r.ID,
		SalonID:       r.SalonID,
		Metadata:      string(meta),
	}
}
