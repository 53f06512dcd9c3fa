package models

import "time"

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	StaffID uint  `gorm:"index:idx_reservations_staff_start" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Ordered, non-empty; each item snapshots duration and price at booking
	// time so later service edits never change past reservations.
	Services []ReservationService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	TotalDurationMin int     `json:"total_duration_min"`
	TotalPrice       float64 `json:"total_price"`

	StartTime time.Time `gorm:"index:idx_reservations_staff_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// One-way latch: set on the first late marking, never cleared.
	IsLateMarked bool `gorm:"default:false" json:"is_late_marked"`

	Notes           string     `gorm:"size:255" json:"notes"`
	CancelledAt     *time.Time `json:"cancelled_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	StatusChangedAt *time.Time `json:"status_changed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReservationService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ReservationID uint `gorm:"index" json:"reservation_id"`
	ServiceID     uint `json:"service_id"`

	Position    int     `json:"position"`
	Name        string  `gorm:"size:100" json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}
