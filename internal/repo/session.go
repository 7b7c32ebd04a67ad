package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/kv"
)

// SessionKey is the session-scoped store key holding the active Session.
const SessionKey = "hotelGuestUser"

// SessionStore holds at most one active Session in a session-scoped store.
type SessionStore struct {
	store kv.Store
	log   *slog.Logger
}

// NewSessionStore constructs a SessionStore. Pass a kv.Memory so the session
// ends with the process.
func NewSessionStore(store kv.Store, log *slog.Logger) *SessionStore {
	return &SessionStore{store: store, log: log}
}

// Current returns the active session. ok is false when nobody is signed in;
// an unreadable stored session counts as signed out.
func (s *SessionStore) Current(ctx context.Context) (domain.Session, bool, error) {
	raw, ok, err := s.store.Get(ctx, SessionKey)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("repo.SessionStore.Current: %w", err)
	}
	if !ok {
		return domain.Session{}, false, nil
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.Email == "" {
		s.log.WarnContext(ctx, "ignoring malformed session", "key", SessionKey, "error", err)
		return domain.Session{}, false, nil
	}
	return sess, true, nil
}

// Set replaces the active session.
func (s *SessionStore) Set(ctx context.Context, sess domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("repo.SessionStore.Set: %w", err)
	}
	if err := s.store.Set(ctx, SessionKey, raw); err != nil {
		return fmt.Errorf("repo.SessionStore.Set: %w", err)
	}
	return nil
}

// Clear ends the active session, if any.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("repo.SessionStore.Clear: %w", err)
	}
	return nil
}

// ActiveEmail implements Identity.
func (s *SessionStore) ActiveEmail(ctx context.Context) string {
	sess, ok, err := s.Current(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "reading session failed", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return sess.Email
}

var _ Identity = (*SessionStore)(nil)
