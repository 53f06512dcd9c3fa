package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreEvent is the append-only trust ledger. Rows are never updated or
// deleted; the client score is always derivable by replaying them.
type ScoreEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Kind     string `gorm:"size:30;not null;uniqueIndex:idx_score_events_reservation_kind" json:"kind"`
	Delta    int    `json:"delta"`

	ReservationID *uint  `gorm:"uniqueIndex:idx_score_events_reservation_kind" json:"reservation_id"`
	SalonID       uint   `json:"salon_id"`
	Metadata      string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

// ScoreSnapshot is an incremental cache of the ledger, maintained in the
// same transaction as each append. Reconcilable by full replay.
type ScoreSnapshot struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"uniqueIndex" json:"client_id"`

	Score           int    `json:"score"`
	Level           string `gorm:"size:20" json:"level"`
	RequiresDeposit bool   `json:"requires_deposit"`

	UpdatedAt time.Time `json:"updated_at"`
}
