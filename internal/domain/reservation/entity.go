package reservation

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Outcome of a successful transition, consumed by the orchestrator to
// decide whether a trust event must be recorded.
type TransitionResult struct {
	From        Status
	To          Status
	LatchedLate bool // this transition set IsLateMarked
}

// Transition applies the status change on the reservation in place.
// The reservation is left untouched when the edge is illegal.
func Transition(r *models.Reservation, to Status, now time.Time) (*TransitionResult, error) {
	from := Status(r.Status)

	if err := CanTransition(from, to, r.IsLateMarked); err != nil {
		return nil, err
	}

	res := &TransitionResult{From: from, To: to}

	r.Status = string(to)
	r.StatusChangedAt = &now

	switch to {
	case StatusLate:
		// One-way latch: never reset, and never set twice (guarded above).
		r.IsLateMarked = true
		res.LatchedLate = true
	case StatusCancelled:
		r.CancelledAt = &now
	case StatusCompleted:
		r.CompletedAt = &now
	}

	return res, nil
}

// EmitsTrustEvent reports whether the transition must append a ledger entry.
// Lateness is penalized only on the latching transition; reverting late ->
// confirmed keeps the latch, so the penalty can never repeat.
func (t *TransitionResult) EmitsTrustEvent() bool {
	return t.To == StatusNoShow || t.LatchedLate
}
