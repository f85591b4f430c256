package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Manager is the single writer of session state. Login, refresh and logout
// all route through it; no other component touches refresh tokens.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager builds a manager with the refresh-token TTL.
func NewManager(store Store, ttlHours int) *Manager {
	if ttlHours <= 0 {
		ttlHours = 720
	}
	return &Manager{store: store, ttl: time.Duration(ttlHours) * time.Hour}
}

// Issue creates a new session and returns its opaque refresh token.
func (m *Manager) Issue(ctx context.Context, userID string) (string, Session, error) {
	now := time.Now()
	sess := Session{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	token := uuid.NewString()
	if err := m.store.Put(ctx, token, sess, m.ttl); err != nil {
		return "", Session{}, err
	}
	return token, sess, nil
}

// Rotate consumes a refresh token and issues a replacement. The consumed
// token is invalid from this point on; a second caller holding the same
// token gets ErrNotFound.
func (m *Manager) Rotate(ctx context.Context, token string) (string, Session, error) {
	old, err := m.store.Consume(ctx, token)
	if err != nil {
		return "", Session{}, err
	}
	if time.Now().After(old.ExpiresAt) {
		return "", Session{}, ErrNotFound
	}
	return m.Issue(ctx, old.UserID)
}

// Revoke removes a session, clearing everything login wrote.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}
