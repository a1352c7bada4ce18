package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"inkwell/internal/common"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis and leans on key TTLs for expiry, so an
// expired session disappears without any sweeper.
type RedisStore struct {
	rdb         *redis.Client
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

func NewRedisStore(rdb *redis.Client, sessionTTL, rememberTTL time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, sessionTTL: sessionTTL, rememberTTL: rememberTTL}
}

// NewRedisClient connects to Redis and verifies connectivity.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) ttl(remember bool) time.Duration {
	if remember {
		return s.rememberTTL
	}
	return s.sessionTTL
}

func (s *RedisStore) Create(ctx context.Context, userID int64, remember bool) (*Session, error) {
	ttl := s.ttl(remember)
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Remember:  remember,
		ExpiresAt: time.Now().Add(ttl),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("RedisStore.Create marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+sess.ID, payload, ttl).Err(); err != nil {
		return nil, fmt.Errorf("RedisStore.Create: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Resolve(ctx context.Context, id string) (*Session, error) {
	payload, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("RedisStore.Resolve: %w", err)
	}
	sess := &Session{}
	if err := json.Unmarshal(payload, sess); err != nil {
		return nil, fmt.Errorf("RedisStore.Resolve unmarshal: %w", err)
	}
	sess.ID = id
	return sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("RedisStore.Destroy: %w", err)
	}
	return nil
}
