package trust

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Event kinds
// ===============================

const (
	KindNoShow          = "NO_SHOW"
	KindLate            = "LATE"
	KindCompletedOnTime = "COMPLETED_ON_TIME"
	KindManualAdjust    = "MANUAL_ADJUST"
)

// ===============================
// Levels
// ===============================

type Level string

const (
	LevelReliable Level = "RELIABLE"
	LevelNormal   Level = "NORMAL"
	LevelAtRisk   Level = "AT_RISK"
)

// ===============================
// Config
// ===============================

type Config struct {
	Baseline int
	Floor    int
	Ceiling  int

	NoShowDelta          int
	LateDelta            int
	CompletedOnTimeDelta int

	ReliableMin int
	NormalMin   int

	// Deposit rule for NORMAL clients ("case by case" in the product):
	// when both are > 0, a NORMAL client with at least NormalDepositNoShows
	// NO_SHOW events in the trailing NormalDepositWindowDays requires a
	// deposit. Zero disables the rule.
	NormalDepositNoShows    int
	NormalDepositWindowDays int
}

func DefaultConfig() Config {
	return Config{
		Baseline:             100,
		Floor:                0,
		Ceiling:              200,
		NoShowDelta:          -20,
		LateDelta:            -5,
		CompletedOnTimeDelta: 2,
		ReliableMin:          120,
		NormalMin:            80,
	}
}

// DeltaFor returns the configured point delta for a reservation-driven kind.
func (c Config) DeltaFor(kind string) int {
	switch kind {
	case KindNoShow:
		return c.NoShowDelta
	case KindLate:
		return c.LateDelta
	case KindCompletedOnTime:
		return c.CompletedOnTimeDelta
	}
	return 0
}

// ===============================
// Derivation
// ===============================

// Derive replays the ledger: clamp(baseline + sum of deltas).
func (c Config) Derive(events []models.ScoreEvent) int {
	score := c.Baseline
	for _, ev := range events {
		score += ev.Delta
	}
	return clamp(score, c.Floor, c.Ceiling)
}

func (c Config) LevelFor(score int) Level {
	switch {
	case score >= c.ReliableMin:
		return LevelReliable
	case score >= c.NormalMin:
		return LevelNormal
	}
	return LevelAtRisk
}

type Evaluation struct {
	Score           int   `json:"score"`
	Level           Level `json:"level"`
	RequiresDeposit bool  `json:"requires_deposit"`
}

// Evaluate derives score, level and the deposit requirement from the full
// ledger. AT_RISK always requires a deposit; NORMAL goes through the
// recent-no-show policy when enabled.
func (c Config) Evaluate(events []models.ScoreEvent, now time.Time) Evaluation {
	score := c.Derive(events)
	level := c.LevelFor(score)

	deposit := level == LevelAtRisk
	if !deposit && level == LevelNormal &&
		c.NormalDepositNoShows > 0 && c.NormalDepositWindowDays > 0 {

		since := now.AddDate(0, 0, -c.NormalDepositWindowDays)
		recent := 0
		for _, ev := range events {
			if ev.Kind == KindNoShow && !ev.CreatedAt.Before(since) {
				recent++
			}
		}
		deposit = recent >= c.NormalDepositNoShows
	}

	return Evaluation{Score: score, Level: level, RequiresDeposit: deposit}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
