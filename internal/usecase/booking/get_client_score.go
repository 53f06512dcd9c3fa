package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/trust"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetClientScore struct {
	repo trust.Repository
	cfg  trust.Config
}

func NewGetClientScore(repo trust.Repository, cfg trust.Config) *GetClientScore {
	return &GetClientScore{repo: repo, cfg: cfg}
}

// Execute derives the score from the full ledger. The snapshot table is a
// write-side optimization; reads always replay so retried or manual events
// can never leave a stale answer.
func (uc *GetClientScore) Execute(
	ctx context.Context,
	clientID uint,
) (trust.Evaluation, error) {

	events, err := uc.repo.ListScoreEvents(ctx, clientID)
	if err != nil {
		return trust.Evaluation{}, err
	}

	return uc.cfg.Evaluate(events, timezone.Now()), nil
}
