// Package redis implements the token revocation store over redis.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix   = "revoked:token:"
	accountKeyPrefix = "revoked:account:"
)

// Store keeps revoked token ids and per-account revocation timestamps
// with TTLs matching the refresh token lifetime, so entries expire on
// their own once the tokens they block would have expired anyway.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

func (s *Store) RevokeAccount(ctx context.Context, accountID uuid.UUID, at time.Time, ttl time.Duration) error {
	key := accountKeyPrefix + accountID.String()
	if err := s.client.Set(ctx, key, at.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke account tokens: %w", err)
	}
	return nil
}

func (s *Store) AccountRevokedAt(ctx context.Context, accountID uuid.UUID) (time.Time, error) {
	raw, err := s.client.Get(ctx, accountKeyPrefix+accountID.String()).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to check account revocation: %w", err)
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt account revocation entry: %w", err)
	}
	return time.Unix(unix, 0), nil
}
