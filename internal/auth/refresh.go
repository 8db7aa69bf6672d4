package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshTokenTTL = 7 * 24 * time.Hour

var ErrRefreshTokenNotFound = errors.New("refresh token not found or expired")

// RefreshStore keeps refresh tokens in redis with a TTL, so no cleanup
// loop is needed: redis expires them.
type RefreshStore struct {
	rdb *redis.Client
}

func NewRefreshStore(rdb *redis.Client) *RefreshStore {
	return &RefreshStore{rdb: rdb}
}

func refreshKey(token string) string {
	return "auth:refresh:" + token
}

// Issue creates a refresh token for the user.
func (s *RefreshStore) Issue(ctx context.Context, userID int) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, refreshKey(token), userID, refreshTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

// Validate returns the user id a refresh token was issued to.
func (s *RefreshStore) Validate(ctx context.Context, token string) (int, error) {
	userID, err := s.rdb.Get(ctx, refreshKey(token)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRefreshTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Revoke deletes a refresh token, e.g. on rotation or sign-out.
func (s *RefreshStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKey(token)).Err()
}
