package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/grand-plaza/internal/domain"
)

// AuthService registers accounts and manages the active session. Every
// identity change reloads or clears the booking view so it always belongs to
// whoever is signed in.
type AuthService struct {
	credentials Credentials
	sessions    Sessions
	bookings    BookingStore
	log         *slog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(credentials Credentials, sessions Sessions, bookings BookingStore, log *slog.Logger) *AuthService {
	return &AuthService{credentials: credentials, sessions: sessions, bookings: bookings, log: log}
}

// Register creates an account, signs it in and loads its bookings. A blank
// confirmation is reported as a mismatch, not as a missing field.
func (s *AuthService) Register(ctx context.Context, name, email, password, confirm string) (domain.Session, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return domain.Session{}, domain.ErrIncompleteFields
	}
	if password != confirm {
		return domain.Session{}, domain.ErrPasswordMismatch
	}

	account, err := s.credentials.Add(ctx, name, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	s.log.InfoContext(ctx, "account registered", "email", account.Email)
	return s.signIn(ctx, account)
}

// Login signs in the account matching email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	// Blank fields match no account and fail as invalid credentials.
	account, err := s.credentials.Verify(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	return s.signIn(ctx, account)
}

// Logout ends the session and empties the booking view without reading the
// backend.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	s.bookings.Reset()
	return nil
}

// Current returns the active session, or domain.ErrUnauthenticated.
func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	sess, ok, err := s.sessions.Current(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Current: %w", err)
	}
	if !ok {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return sess, nil
}

func (s *AuthService) signIn(ctx context.Context, account domain.UserAccount) (domain.Session, error) {
	sess := domain.Session{Name: account.Name, Email: account.Email}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService: set session: %w", err)
	}
	if _, err := s.bookings.Load(ctx, sess.Email); err != nil {
		// The booking service reloads on the next request.
		s.log.WarnContext(ctx, "loading bookings after sign-in failed", "email", sess.Email, "error", err)
	}
	return sess, nil
}
