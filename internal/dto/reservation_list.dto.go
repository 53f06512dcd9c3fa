package dto

import "time"

type ReservationListDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	IsLateMarked bool      `json:"is_late_marked"`
	ClientName   string    `json:"client_name"`
	ServiceNames []string  `json:"service_names"`
	TotalPrice   float64   `json:"total_price"`
}
