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

// bookableDay returns a date far enough ahead that the minimum advance
// never interferes.
func bookableDay() time.Time {
	return time.Now().UTC().AddDate(0, 0, 14)
}

func workingDay(day time.Time) []models.AvailabilityWindow {
	return []models.AvailabilityWindow{
		{Weekday: int(day.Weekday()), Active: true, StartTime: "09:00", EndTime: "18:00"},
	}
}

func validBookInput(day time.Time) BookReservationInput {
	return BookReservationInput{
		SalonID:     1,
		StaffID:     7,
		ClientName:  "Joana",
		ClientPhone: "+5511999990000",
		ServiceIDs:  []uint{3},
		Date:        day.Format("2006-01-02"),
		Time:        "10:00",
	}
}

func TestBookReservationSuccess(t *testing.T) {
	repo := newStubRepo()
	day := bookableDay()
	repo.windows = workingDay(day)

	uc := NewBookReservation(repo, nil, nil)

	r, err := uc.Execute(context.Background(), validBookInput(day))
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, uint(101), r.ID)
	assert.Equal(t, string(domain.StatusPending), r.Status)
	assert.Equal(t, 30, r.TotalDurationMin)
	assert.Equal(t, 50.0, r.TotalPrice)
	assert.Equal(t, uint(42), r.ClientID)

	require.Len(t, r.Services, 1)
	assert.Equal(t, "Haircut", r.Services[0].Name)
	assert.Equal(t, 30, r.Services[0].DurationMin)

	assert.Equal(t, "10:00", r.StartTime.Format("15:04"))
	assert.Equal(t, "10:30", r.EndTime.Format("15:04"))

	// pending does not reserve capacity by default
	assert.NotContains(t, repo.lastBlocking, domain.StatusPending)
}

func TestBookReservationAutoConfirm(t *testing.T) {
	repo := newStubRepo()
	repo.salon.AutoConfirm = true
	day := bookableDay()
	repo.windows = workingDay(day)

	uc := NewBookReservation(repo, nil, nil)

	r, err := uc.Execute(context.Background(), validBookInput(day))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), r.Status)
}

func TestBookReservationPendingBlocksSlotsOptIn(t *testing.T) {
	repo := newStubRepo()
	repo.salon.PendingBlocksSlots = true
	day := bookableDay()
	repo.windows = workingDay(day)

	uc := NewBookReservation(repo, nil, nil)

	_, err := uc.Execute(context.Background(), validBookInput(day))
	require.NoError(t, err)
	assert.Contains(t, repo.lastBlocking, domain.StatusPending)
}

func TestBookReservationValidation(t *testing.T) {
	day := bookableDay()

	tests := []struct {
		name     string
		mutate   func(*stubRepo, *BookReservationInput)
		wantCode string
	}{
		{
			name: "invalid time",
			mutate: func(_ *stubRepo, in *BookReservationInput) {
				in.Time = "25:99"
			},
			wantCode: httperr.CodeInvalidDateOrTime,
		},
		{
			name: "past date",
			mutate: func(_ *stubRepo, in *BookReservationInput) {
				in.Date = "2020-01-01"
			},
			wantCode: httperr.CodePastDate,
		},
		{
			name: "empty services",
			mutate: func(_ *stubRepo, in *BookReservationInput) {
				in.ServiceIDs = nil
			},
			wantCode: httperr.CodeEmptyServices,
		},
		{
			name: "unknown service",
			mutate: func(_ *stubRepo, in *BookReservationInput) {
				in.ServiceIDs = []uint{99}
			},
			wantCode: httperr.CodeServiceNotFound,
		},
		{
			name: "unknown staff",
			mutate: func(_ *stubRepo, in *BookReservationInput) {
				in.StaffID = 8
			},
			wantCode: httperr.CodeStaffNotFound,
		},
		{
			name: "day off",
			mutate: func(r *stubRepo, _ *BookReservationInput) {
				r.windows = nil
			},
			wantCode: httperr.CodeStaffUnavailable,
		},
		{
			name: "outside working hours",
			mutate: func(r *stubRepo, in *BookReservationInput) {
				r.windows = []models.AvailabilityWindow{
					{Weekday: int(day.Weekday()), Active: true, StartTime: "09:00", EndTime: "10:15"},
				}
				in.Time = "10:00" // ends 10:30, past the window end
			},
			wantCode: httperr.CodeOutsideWorkingHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			repo.windows = workingDay(day)
			in := validBookInput(day)
			tt.mutate(repo, &in)

			uc := NewBookReservation(repo, nil, nil)
			_, err := uc.Execute(context.Background(), in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
			assert.Nil(t, repo.created)
		})
	}
}

func TestBookReservationTooSoon(t *testing.T) {
	repo := newStubRepo()
	soon := time.Now().UTC().Add(30 * time.Minute) // under the 120 min advance
	repo.windows = []models.AvailabilityWindow{
		{Weekday: int(soon.Weekday()), Active: true, StartTime: "00:00", EndTime: "23:59"},
	}

	in := validBookInput(soon)
	in.Time = soon.Format("15:04")

	uc := NewBookReservation(repo, nil, nil)
	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTooSoon), "got %v", err)
}

func TestBookReservationSlotTaken(t *testing.T) {
	repo := newStubRepo()
	day := bookableDay()
	repo.windows = workingDay(day)

	loc := time.UTC
	start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, loc)
	repo.busy = []domain.Interval{
		{Start: start, End: start.Add(30 * time.Minute)},
	}

	uc := NewBookReservation(repo, nil, nil)
	_, err := uc.Execute(context.Background(), validBookInput(day))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable), "got %v", err)
	assert.Nil(t, repo.created)
}
