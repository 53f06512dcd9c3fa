package booking

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/trust"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type RecordAdjustmentInput struct {
	SalonID      uint
	ClientID     uint
	Delta        int
	Reason       string
	ActorStaffID uint
}

// RecordAdjustment appends a MANUAL_ADJUST ledger entry, the only
// trust event not driven by a reservation transition.
type RecordAdjustment struct {
	repo  trust.Repository
	cfg   trust.Config
	audit *audit.Dispatcher
}

func NewRecordAdjustment(
	repo trust.Repository,
	cfg trust.Config,
	audit *audit.Dispatcher,
) *RecordAdjustment {
	return &RecordAdjustment{repo: repo, cfg: cfg, audit: audit}
}

func (uc *RecordAdjustment) Execute(
	ctx context.Context,
	in RecordAdjustmentInput,
) (trust.Evaluation, error) {

	if in.Delta == 0 {
		return trust.Evaluation{}, httperr.ErrBusiness("zero_delta")
	}

	meta, _ := json.Marshal(map[string]any{
		"reason":   in.Reason,
		"staff_id": in.ActorStaffID,
	})

	ev := &models.ScoreEvent{
		ClientID: in.ClientID,
		Kind:     trust.KindManualAdjust,
		Delta:    in.Delta,
		SalonID:  in.SalonID,
		Metadata: string(meta),
	}

	if err := uc.repo.AppendScoreEvent(ctx, ev); err != nil {
		return trust.Evaluation{}, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		StaffID:  &in.ActorStaffID,
		Action:   "score_adjusted",
		Entity:   "client",
		EntityID: &in.ClientID,
		Metadata: map[string]any{"delta": in.Delta, "reason": in.Reason},
	})

	snap, err := uc.repo.GetScoreSnapshot(ctx, in.ClientID)
	if err != nil {
		return trust.Evaluation{}, err
	}

	return trust.Evaluation{
		Score:           snap.Score,
		Level:           trust.Level(snap.Level),
		RequiresDeposit: snap.RequiresDeposit,
	}, nil
}
