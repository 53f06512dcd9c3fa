package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
)

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", time.Minute, zap.NewNop())
	require.NotNil(t, c)
	return c, mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	slots := []reservation.TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:15", End: "09:45"},
	}

	_, ok := c.Get(ctx, 7, "2025-06-10", 30)
	assert.False(t, ok, "miss before set")

	c.Set(ctx, 7, "2025-06-10", 30, slots)

	got, ok := c.Get(ctx, 7, "2025-06-10", 30)
	require.True(t, ok)
	assert.Equal(t, slots, got)

	// a different duration is a different key
	_, ok = c.Get(ctx, 7, "2025-06-10", 45)
	assert.False(t, ok)
}

func TestCacheInvalidateDropsAllDurations(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	slots := []reservation.TimeSlot{{Start: "09:00", End: "09:30"}}

	c.Set(ctx, 7, "2025-06-10", 30, slots)
	c.Set(ctx, 7, "2025-06-10", 45, slots)
	c.Set(ctx, 7, "2025-06-11", 30, slots) // other day survives
	c.Set(ctx, 8, "2025-06-10", 30, slots) // other staff survives

	c.Invalidate(ctx, 7, "2025-06-10")

	_, ok := c.Get(ctx, 7, "2025-06-10", 30)
	assert.False(t, ok)
	_, ok = c.Get(ctx, 7, "2025-06-10", 45)
	assert.False(t, ok)

	_, ok = c.Get(ctx, 7, "2025-06-11", 30)
	assert.True(t, ok)
	_, ok = c.Get(ctx, 8, "2025-06-10", 30)
	assert.True(t, ok)
}

func TestCacheEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 7, "2025-06-10", 30, []reservation.TimeSlot{{Start: "09:00", End: "09:30"}})

	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, 7, "2025-06-10", 30)
	assert.False(t, ok)
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *AvailabilityCache
	ctx := context.Background()

	assert.Nil(t, New("", "", time.Minute, zap.NewNop()))

	// none of these may panic
	_, ok := c.Get(ctx, 7, "2025-06-10", 30)
	assert.False(t, ok)
	c.Set(ctx, 7, "2025-06-10", 30, nil)
	c.Invalidate(ctx, 7, "2025-06-10")
}
