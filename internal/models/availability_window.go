package models

import "time"

// AvailabilityWindow describes when a staff member can be booked.
//
// Recurring rows (IsException=false) apply to a weekday; exception rows
// (IsException=true) apply to a single date and replace every recurring row
// for that date. An exception with Closed=true means unavailable all day.
type AvailabilityWindow struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index" json:"staff_id"`

	Weekday int        `json:"weekday"`
	Date    *time.Time `gorm:"type:date" json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"` // "15:04"
	EndTime   string `gorm:"size:5" json:"end_time"`

	IsException bool `json:"is_exception"`
	Closed      bool `json:"closed"`
	Active      bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
