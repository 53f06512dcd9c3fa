package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func availabilityInput(day time.Time) domain.AvailabilityInput {
	return domain.AvailabilityInput{
		SalonID:    1,
		StaffID:    7,
		ServiceIDs: []uint{3},
		Date:       day,
	}
}

func TestGetAvailabilityComputesSlots(t *testing.T) {
	repo := newStubRepo()
	day := bookableDay()
	repo.windows = []models.AvailabilityWindow{
		{Weekday: int(day.Weekday()), Active: true, StartTime: "09:00", EndTime: "12:00"},
	}

	busyStart := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.UTC)
	repo.busy = []domain.Interval{
		{Start: busyStart, End: busyStart.Add(30 * time.Minute)},
	}

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), availabilityInput(day))
	require.NoError(t, err)

	got := make([]string, 0, len(slots))
	for _, s := range slots {
		got = append(got, s.Start)
	}
	assert.Equal(t, []string{
		"09:00", "09:15", "09:30",
		"10:30", "10:45", "11:00", "11:15", "11:30",
	}, got)
}

func TestGetAvailabilityClosedDayIsEmpty(t *testing.T) {
	repo := newStubRepo()
	day := bookableDay()

	excDate := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	repo.windows = []models.AvailabilityWindow{
		{Weekday: int(day.Weekday()), Active: true, StartTime: "09:00", EndTime: "18:00"},
		{Weekday: int(day.Weekday()), Date: &excDate, IsException: true, Active: true, Closed: true},
	}

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), availabilityInput(day))
	require.NoError(t, err)
	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetAvailabilityValidation(t *testing.T) {
	repo := newStubRepo()
	day := bookableDay()
	repo.windows = workingDay(day)
	uc := NewGetAvailability(repo, nil)

	in := availabilityInput(day)
	in.ServiceIDs = nil
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeEmptyServices))

	in = availabilityInput(day)
	in.StaffID = 8
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeStaffNotFound))

	in = availabilityInput(day)
	in.ServiceIDs = []uint{99}
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
}
