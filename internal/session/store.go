// Package session is the TTL key-value bookkeeping behind single-session
// auth: one active token per admin (`token:{adminID}`) and a logout
// blacklist (`blacklist:{token}`). The relational store stays the source of
// truth; these entries are best-effort — callers in the auth path log and
// continue when a write fails, so session-cache unavailability never blocks
// login or logout.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when the looked-up key does not exist, as opposed
// to the store being unreachable.
var ErrNoSession = errors.New("session: no such entry")

// Store is the session-cache contract. Constructed once at startup and
// injected into the auth service and middleware (no package-level client).
type Store interface {
	SetActiveToken(ctx context.Context, adminID, token string, ttl time.Duration) error
	ActiveToken(ctx context.Context, adminID string) (string, error)
	DeleteActiveToken(ctx context.Context, adminID string) error
	Blacklist(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type redisStore struct{ rdb *redis.Client }

// NewRedisStore wraps a go-redis client as a Store.
func NewRedisStore(rdb *redis.Client) Store { return &redisStore{rdb: rdb} }

func activeKey(adminID string) string  { return "token:" + adminID }
func blacklistKey(token string) string { return "blacklist:" + token }

func (s *redisStore) SetActiveToken(ctx context.Context, adminID, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, activeKey(adminID), token, ttl).Err()
}

func (s *redisStore) ActiveToken(ctx context.Context, adminID string) (string, error) {
	v, err := s.rdb.Get(ctx, activeKey(adminID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	return v, err
}

func (s *redisStore) DeleteActiveToken(ctx context.Context, adminID string) error {
	return s.rdb.Del(ctx, activeKey(adminID)).Err()
}

func (s *redisStore) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, blacklistKey(token), "1", ttl).Err()
}

func (s *redisStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := s.rdb.Get(ctx, blacklistKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
