// Package prefs stores small per-user display preferences in redis. These
// are not domain state: losing them has no correctness impact.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func resetReferenceKey(userID int) string {
	return fmt.Sprintf("prefs:%d:reset_reference", userID)
}

// SetResetReference stores the timestamp from which the rolling sales
// balance is computed. Sales dated at or before it are excluded from the
// displayed totals; the sale records themselves are untouched.
func (s *Store) SetResetReference(ctx context.Context, userID int, t time.Time) error {
	return s.rdb.Set(ctx, resetReferenceKey(userID), t.UTC().Format(time.RFC3339), 0).Err()
}

// ResetReference returns the stored reference, or nil when none is set.
func (s *Store) ResetReference(ctx context.Context, userID int) (*time.Time, error) {
	val, err := s.rdb.Get(ctx, resetReferenceKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil, fmt.Errorf("corrupt reset reference: %w", err)
	}
	return &t, nil
}

func (s *Store) ClearResetReference(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, resetReferenceKey(userID)).Err()
}
