package session

import (
	"context"

	"parkflow/internal/domain"
)

// Store persists sessions keyed by session ID. Absent or corrupt
// entries yield the empty session, never an error: an unreadable
// session is indistinguishable from being logged out.
type Store interface {
	Get(ctx context.Context, sid string) (domain.Session, error)
	Set(ctx context.Context, sid string, sess domain.Session) error
	Clear(ctx context.Context, sid string) error
}

// Ensure concrete types implement the interface.
var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
