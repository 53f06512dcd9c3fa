package models

import "time"

type Salon struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:50" json:"timezone"`

	MinAdvanceMinutes      int `gorm:"default:120" json:"min_advance_minutes"`
	SlotGranularityMinutes int `gorm:"default:15" json:"slot_granularity_minutes"`

	// AutoConfirm: reservations are created directly as confirmed.
	// PendingBlocksSlots: pending reservations also reserve capacity.
	AutoConfirm        bool `gorm:"default:false" json:"auto_confirm"`
	PendingBlocksSlots bool `gorm:"default:false" json:"pending_blocks_slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
