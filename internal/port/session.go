package port

import "context"

// SessionStore keeps per-session string values. Get returns
// domain.ErrNotFound when the session or key does not exist.
type SessionStore interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID string) error
}
