package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"parkflow/internal/domain"
)

const sessionKeyPrefix = "session:"

// DefaultTTL bounds how long an idle session survives. The backend
// token usually expires sooner; this is the storage-side bound.
const DefaultTTL = 24 * time.Hour

// RedisStore keeps sessions in Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. A zero ttl falls back to
// DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sid string) (domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sid).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.Session{}, nil
		}
		return domain.Session{}, err
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt entry: treat as logged out rather than failing.
		return domain.Session{}, nil
	}
	return sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sid string, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sid, data, s.ttl).Err()
}

// Clear removes the session. Clearing an absent session is a no-op.
func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sid).Err()
}
