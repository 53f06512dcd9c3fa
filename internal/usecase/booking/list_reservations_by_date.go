package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListReservationsByDate struct {
	repo domain.Repository
}

func NewListReservationsByDate(
	repo domain.Repository,
) *ListReservationsByDate {
	return &ListReservationsByDate{
		repo: repo,
	}
}

func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	staffID uint,
	salonID uint,
	date time.Time,
) ([]dto.ReservationListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	reservations, err := uc.repo.ListReservationsForPeriod(
		ctx,
		staffID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(reservations), nil
}

func toListDTOs(reservations []models.Reservation) []dto.ReservationListDTO {
	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, r := range reservations {
		names := make([]string, 0, len(r.Services))
		for _, s := range r.Services {
			names = append(names, s.Name)
		}
		out = append(out, dto.ReservationListDTO{
			ID:           r.ID,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			Status:       r.Status,
			IsLateMarked: r.IsLateMarked,
			ClientName:   r.Client.Name,
			ServiceNames: names,
			TotalPrice:   r.TotalPrice,
		})
	}
	return out
}
