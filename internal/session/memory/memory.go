// Package memory is an in-process session store for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"fbauth/internal/domain"
	"fbauth/internal/port"
)

// Store keeps one value map per session. Entries expire ttl after their
// last access.
type Store struct {
	mu sync.Mutex
	c  *gocache.Cache
}

// New creates a Store whose sessions expire after ttl of inactivity.
func New(ttl time.Duration) *Store {
	return &Store{c: gocache.New(ttl, time.Minute)}
}

func (s *Store) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.load(sessionID)
	if !ok {
		return "", domain.ErrNotFound
	}
	v, ok := values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	s.c.Set(sessionID, values, gocache.DefaultExpiration)
	return v, nil
}

func (s *Store) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.load(sessionID)
	if !ok {
		values = make(map[string]string, 1)
	}
	values[key] = value
	s.c.Set(sessionID, values, gocache.DefaultExpiration)
	return nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.c.Delete(sessionID)
	return nil
}

func (s *Store) load(sessionID string) (map[string]string, bool) {
	v, ok := s.c.Get(sessionID)
	if !ok {
		return nil, false
	}
	values, ok := v.(map[string]string)
	return values, ok
}

var _ port.SessionStore = (*Store)(nil)
