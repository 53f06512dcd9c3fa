package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/trust"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seedReservation(repo *stubRepo, status domain.Status) *models.Reservation {
	r := &models.Reservation{
		ID:        55,
		SalonID:   1,
		StaffID:   7,
		ClientID:  42,
		Status:    string(status),
		StartTime: time.Now().UTC().AddDate(0, 0, 1),
	}
	repo.reservations[r.ID] = r
	return r
}

func changeStatusUC(repo *stubRepo) *ChangeReservationStatus {
	return NewChangeReservationStatus(repo, nil, nil, trust.DefaultConfig())
}

func execChange(t *testing.T, uc *ChangeReservationStatus, status string) (*models.Reservation, error) {
	t.Helper()
	return uc.Execute(context.Background(), ChangeStatusInput{
		SalonID:       1,
		ReservationID: 55,
		NewStatus:     status,
		ActorStaffID:  7,
	})
}

func TestChangeStatusNoShowEmitsEvent(t *testing.T) {
	repo := newStubRepo()
	seedReservation(repo, domain.StatusConfirmed)
	uc := changeStatusUC(repo)

	r, err := execChange(t, uc, "no_show")
	require.NoError(t, err)
	assert.Equal(t, "no_show", r.Status)

	require.NotNil(t, repo.updatedEv)
	assert.Equal(t, trust.KindNoShow, repo.updatedEv.Kind)
	assert.Equal(t, -20, repo.updatedEv.Delta)
	assert.Equal(t, uint(42), repo.updatedEv.ClientID)
	require.NotNil(t, repo.updatedEv.ReservationID)
	assert.Equal(t, uint(55), *repo.updatedEv.ReservationID)
}

func TestChangeStatusLatePenalizedOnce(t *testing.T) {
	repo := newStubRepo()
	seedReservation(repo, domain.StatusConfirmed)
	uc := changeStatusUC(repo)

	// first late marking: latch + penalty
	r, err := execChange(t, uc, "late")
	require.NoError(t, err)
	assert.True(t, r.IsLateMarked)
	require.NotNil(t, repo.updatedEv)
	assert.Equal(t, trust.KindLate, repo.updatedEv.Kind)
	assert.Equal(t, -5, repo.updatedEv.Delta)

	// client arrives: back to confirmed, no event
	r, err = execChange(t, uc, "confirmed")
	require.NoError(t, err)
	assert.True(t, r.IsLateMarked)
	assert.Nil(t, repo.updatedEv)

	// a second late marking is rejected and nothing is persisted
	_, err = execChange(t, uc, "late")
	require.Error(t, err)
	assert.True(t, httperr.IsInvalidTransition(err))
	assert.Equal(t, 2, repo.updateCalls)
	assert.Len(t, repo.events, 1)
}

func TestChangeStatusCompletedOnTime(t *testing.T) {
	repo := newStubRepo()
	seedReservation(repo, domain.StatusConfirmed)
	uc := changeStatusUC(repo)

	r, err := execChange(t, uc, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", r.Status)
	require.NotNil(t, r.CompletedAt)

	require.NotNil(t, repo.updatedEv)
	assert.Equal(t, trust.KindCompletedOnTime, repo.updatedEv.Kind)
	assert.Equal(t, 2, repo.updatedEv.Delta)
}

func TestChangeStatusCompletedLateHasNoReward(t *testing.T) {
	repo := newStubRepo()
	r := seedReservation(repo, domain.StatusLate)
	r.IsLateMarked = true
	uc := changeStatusUC(repo)

	got, err := execChange(t, uc, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	assert.Nil(t, repo.updatedEv, "a late completion earns nothing")
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	repo := newStubRepo()
	seedReservation(repo, domain.StatusConfirmed)
	uc := changeStatusUC(repo)

	_, err := execChange(t, uc, "banana")
	require.Error(t, err)
	assert.True(t, httperr.IsInvalidTransition(err))
	assert.Zero(t, repo.updateCalls)
}

func TestChangeStatusTerminalIsFinal(t *testing.T) {
	repo := newStubRepo()
	seedReservation(repo, domain.StatusCompleted)
	uc := changeStatusUC(repo)

	_, err := execChange(t, uc, "cancelled")
	require.Error(t, err)
	assert.True(t, httperr.IsInvalidTransition(err))
	assert.Zero(t, repo.updateCalls)
}

func TestChangeStatusUnknownReservation(t *testing.T) {
	repo := newStubRepo()
	uc := changeStatusUC(repo)

	_, err := uc.Execute(context.Background(), ChangeStatusInput{
		SalonID:       1,
		ReservationID: 999,
		NewStatus:     "confirmed",
		ActorStaffID:  7,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))
}

func TestChangeStatusInvalidatesSalonLocalDate(t *testing.T) {
	repo := newStubRepo()
	repo.salon.Timezone = "America/Sao_Paulo"

	// 01:00 UTC is still the previous day in Sao Paulo
	r := seedReservation(repo, domain.StatusPending)
	r.StartTime = time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC)

	mr := miniredis.RunT(t)
	availCache := cache.New(mr.Addr(), "", time.Minute, zap.NewNop())
	uc := NewChangeReservationStatus(repo, availCache, nil, trust.DefaultConfig())

	ctx := context.Background()
	slots := []domain.TimeSlot{{Start: "22:00", End: "22:30"}}
	availCache.Set(ctx, r.StaffID, "2025-06-10", 30, slots)

	_, err := execChange(t, uc, "confirmed")
	require.NoError(t, err)

	_, ok := availCache.Get(ctx, r.StaffID, "2025-06-10", 30)
	assert.False(t, ok, "the salon-local day must be invalidated")
}

func TestChangeStatusWrongSalon(t *testing.T) {
	repo := newStubRepo()
	seedReservation(repo, domain.StatusConfirmed)
	uc := changeStatusUC(repo)

	_, err := uc.Execute(context.Background(), ChangeStatusInput{
		SalonID:       2,
		ReservationID: 55,
		NewStatus:     "confirmed",
		ActorStaffID:  7,
	})
	require.Error(t, err)
}
