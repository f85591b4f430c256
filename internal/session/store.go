package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a refresh token does not resolve to a live
// session: it was never issued, it expired, or it has already been consumed.
var ErrNotFound = errors.New("session not found")

// Session is the server-side state bound to one refresh token.
type Session struct {
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions keyed by refresh token. Consume must be atomic:
// concurrent consumers of the same token see exactly one winner.
type Store interface {
	Put(ctx context.Context, token string, sess Session, ttl time.Duration) error
	Consume(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

const keyPrefix = "session:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Redis-backed session store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Put(ctx context.Context, token string, sess Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+token, payload, ttl).Err()
}

// Consume atomically deletes and returns the session via GETDEL, which is
// what makes refresh tokens single-use under concurrency.
func (s *redisStore) Consume(ctx context.Context, token string) (Session, error) {
	payload, err := s.client.GetDel(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
