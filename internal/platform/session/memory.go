package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/common"
)

// MemoryStore is an in-process Store for tests and single-node runs. Expiry
// is checked lazily on Resolve.
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	sessionTTL  time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

func NewMemoryStore(sessionTTL, rememberTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*Session),
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, userID int64, remember bool) (*Session, error) {
	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Remember:  remember,
		ExpiresAt: s.now().Add(ttl),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *MemoryStore) Resolve(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, common.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
