package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name       string
		from       Status
		to         Status
		lateMarked bool
		wantErr    bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, false, false},
		{"pending to cancelled", StatusPending, StatusCancelled, false, false},
		{"pending to completed", StatusPending, StatusCompleted, false, true},
		{"pending to no_show", StatusPending, StatusNoShow, false, true},
		{"pending to late", StatusPending, StatusLate, false, true},

		{"confirmed to completed", StatusConfirmed, StatusCompleted, false, false},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, false, false},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, false, false},
		{"confirmed to late", StatusConfirmed, StatusLate, false, false},
		{"confirmed to pending", StatusConfirmed, StatusPending, false, true},

		{"late back to confirmed", StatusLate, StatusConfirmed, true, false},
		{"late to no_show", StatusLate, StatusNoShow, true, false},
		{"late to completed", StatusLate, StatusCompleted, true, false},
		{"late to cancelled", StatusLate, StatusCancelled, true, true},

		// the latch: once marked, late is never enterable again
		{"confirmed to late after latch", StatusConfirmed, StatusLate, true, true},

		{"completed is terminal", StatusCompleted, StatusConfirmed, false, true},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false, true},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.lateMarked)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, httperr.IsInvalidTransition(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusNoShow))

	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.False(t, IsTerminal(StatusLate))
}

func TestBlockingStatuses(t *testing.T) {
	base := BlockingStatuses(false)
	assert.ElementsMatch(t, []Status{StatusConfirmed, StatusLate, StatusCompleted}, base)

	withPending := BlockingStatuses(true)
	assert.ElementsMatch(t,
		[]Status{StatusConfirmed, StatusLate, StatusCompleted, StatusPending},
		withPending,
	)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(false))
	assert.Equal(t, StatusConfirmed, InitialStatus(true))
}

func TestTransitionAppliesChanges(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	r := &models.Reservation{Status: string(StatusConfirmed)}

	res, err := Transition(r, StatusLate, now)
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, res.From)
	assert.Equal(t, StatusLate, res.To)
	assert.True(t, res.LatchedLate)
	assert.True(t, res.EmitsTrustEvent())

	assert.Equal(t, string(StatusLate), r.Status)
	assert.True(t, r.IsLateMarked)
	require.NotNil(t, r.StatusChangedAt)
	assert.Equal(t, now, *r.StatusChangedAt)
}

func TestTransitionLatchIsOneWay(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	r := &models.Reservation{Status: string(StatusConfirmed)}

	_, err := Transition(r, StatusLate, now)
	require.NoError(t, err)

	// client shows up: back to confirmed, latch survives
	res, err := Transition(r, StatusConfirmed, now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.False(t, res.LatchedLate)
	assert.False(t, res.EmitsTrustEvent())
	assert.True(t, r.IsLateMarked)

	// a second late marking must be rejected
	_, err = Transition(r, StatusLate, now.Add(10*time.Minute))
	require.Error(t, err)
	assert.True(t, httperr.IsInvalidTransition(err))
	assert.Equal(t, string(StatusConfirmed), r.Status)
}

func TestTransitionRejectedLeavesReservationUntouched(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	r := &models.Reservation{Status: string(StatusCompleted)}

	_, err := Transition(r, StatusCancelled, now)
	require.Error(t, err)

	assert.Equal(t, string(StatusCompleted), r.Status)
	assert.Nil(t, r.StatusChangedAt)
	assert.Nil(t, r.CancelledAt)
}

func TestTransitionSetsTerminalTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	cancelled := &models.Reservation{Status: string(StatusPending)}
	_, err := Transition(cancelled, StatusCancelled, now)
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, now, *cancelled.CancelledAt)

	completed := &models.Reservation{Status: string(StatusConfirmed)}
	res, err := Transition(completed, StatusCompleted, now)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, now, *completed.CompletedAt)
	assert.False(t, res.EmitsTrustEvent())
}

func TestTransitionNoShowEmitsTrustEvent(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	r := &models.Reservation{Status: string(StatusLate), IsLateMarked: true}
	res, err := Transition(r, StatusNoShow, now)
	require.NoError(t, err)
	assert.True(t, res.EmitsTrustEvent())
}
