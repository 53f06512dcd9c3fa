package trust

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository is the trust ledger contract. Reservation-driven appends go
// through the reservation repository so the ledger entry, the status change
// and the snapshot refresh share one transaction; AppendScoreEvent exists
// for manual adjustments only.
type Repository interface {
	// AppendScoreEvent appends a ledger entry and refreshes the snapshot
	// atomically. A duplicate (reservation, kind) pair is a no-op.
	AppendScoreEvent(
		ctx context.Context,
		ev *models.ScoreEvent,
	) error

	// ListScoreEvents returns the client's full ledger, oldest first.
	ListScoreEvents(
		ctx context.Context,
		clientID uint,
	) ([]models.ScoreEvent, error)

	GetScoreSnapshot(
		ctx context.Context,
		clientID uint,
	) (*models.ScoreSnapshot, error)

	SaveScoreSnapshot(
		ctx context.Context,
		snap *models.ScoreSnapshot,
	) error
}
