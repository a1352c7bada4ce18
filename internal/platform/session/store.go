package session

import (
	"context"
	"time"
)

// Session is the ephemeral authentication state for one client. The ID is the
// only thing that reaches the client (as an opaque cookie value); everything
// else stays server-side.
type Session struct {
	ID        string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Remember  bool      `json:"remember"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store tracks live sessions independent of the transport mechanism that
// carries the session ID. Resolve treats an expired session the same as a
// missing one.
type Store interface {
	Create(ctx context.Context, userID int64, remember bool) (*Session, error)
	Resolve(ctx context.Context, id string) (*Session, error)
	Destroy(ctx context.Context, id string) error
}
