package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
)

// AvailabilityCache keeps computed slot sets per (staff, date, duration)
// for a short TTL. It is purely an optimization: every failure is logged
// and treated as a miss, and booking always re-checks against the store.
type AvailabilityCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New returns nil when addr is empty; a nil cache is a valid no-op.
func New(addr, password string, ttl time.Duration, logger *zap.Logger) *AvailabilityCache {
	if addr == "" {
		return nil
	}
	return &AvailabilityCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl:    ttl,
		logger: logger,
	}
}

func key(staffID uint, date string, durationMin int) string {
	return fmt.Sprintf("availability:%d:%s:%d", staffID, date, durationMin)
}

func invalidationPattern(staffID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s:*", staffID, date)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	staffID uint,
	date string,
	durationMin int,
) ([]reservation.TimeSlot, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(staffID, date, durationMin)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("availability cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var slots []reservation.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	staffID uint,
	date string,
	durationMin int,
	slots []reservation.TimeSlot,
) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(staffID, date, durationMin), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache set failed", zap.Error(err))
	}
}

// Invalidate drops every cached duration for the staff member's day. Called
// after any write that changes the blocking set. Uses SCAN so it never
// blocks the redis server the way KEYS would.
func (c *AvailabilityCache) Invalidate(ctx context.Context, staffID uint, date string) {
	if c == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, invalidationPattern(staffID, date), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("availability cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("availability cache invalidate failed", zap.Error(err))
	}
}
