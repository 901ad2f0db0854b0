// Package redis stores sessions as Redis hashes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"fbauth/internal/domain"
	"fbauth/internal/port"
)

// Store keeps each session in a hash named prefix+sessionID with a sliding
// expiry.
type Store struct {
	c      rdb.UniversalClient
	prefix string
	ttl    time.Duration
}

// New connects to addr and returns a Store.
func New(addr, password string, db int, prefix string, ttl time.Duration) *Store {
	c := rdb.NewClient(&rdb.Options{Addr: addr, Password: password, DB: db})
	return NewWithClient(c, prefix, ttl)
}

// NewWithClient wraps an existing client.
func NewWithClient(c rdb.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{c: c, prefix: prefix, ttl: ttl}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) Get(ctx context.Context, sessionID, key string) (string, error) {
	v, err := s.c.HGet(ctx, s.key(sessionID), key).Result()
	if err != nil {
		if errors.Is(err, rdb.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("redis session get: %w", err)
	}
	if s.ttl > 0 {
		if err := s.c.Expire(ctx, s.key(sessionID), s.ttl).Err(); err != nil {
			return "", fmt.Errorf("redis session touch: %w", err)
		}
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := s.c.TxPipelined(ctx, func(pipe rdb.Pipeliner) error {
		pipe.HSet(ctx, s.key(sessionID), key, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key(sessionID), s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis session set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.c.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}

// PingContext checks connectivity.
func (s *Store) PingContext(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.c.Close()
}

var _ port.SessionStore = (*Store)(nil)
