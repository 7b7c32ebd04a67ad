package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/kv"
)

// UsersKey is the durable store key holding the JSON array of accounts.
const UsersKey = "hotelUsers"

// CredentialStore maps normalized emails to accounts in a durable store.
// Passwords are hashed with bcrypt when an account is added and checked
// with bcrypt on Verify; plain text passwords are never stored.
type CredentialStore struct {
	store kv.Store
	cost  int
	log   *slog.Logger
	mu    sync.Mutex // serializes read-modify-write in Add
}

// NewCredentialStore constructs a CredentialStore hashing with the given
// bcrypt cost. Values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewCredentialStore(store kv.Store, cost int, log *slog.Logger) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{store: store, cost: cost, log: log}
}

// Add registers a new account. The email is normalized first.
// Returns domain.ErrEmailAlreadyExists when the email is taken.
func (c *CredentialStore) Add(ctx context.Context, name, email, password string) (domain.UserAccount, error) {
	email = domain.NormalizeEmail(email)

	c.mu.Lock()
	defer c.mu.Unlock()

	users, err := c.list(ctx)
	if err != nil {
		return domain.UserAccount{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return domain.UserAccount{}, fmt.Errorf("repo.CredentialStore.Add: %w", domain.ErrEmailAlreadyExists)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.UserAccount{}, fmt.Errorf("repo.CredentialStore.Add: %w: password is too long", domain.ErrValidation)
		}
		return domain.UserAccount{}, fmt.Errorf("repo.CredentialStore.Add: hash: %w", err)
	}

	account := domain.UserAccount{Name: name, Email: email, Password: string(hash)}
	raw, err := json.Marshal(append(users, account))
	if err != nil {
		return domain.UserAccount{}, fmt.Errorf("repo.CredentialStore.Add: encode: %w", err)
	}
	if err := c.store.Set(ctx, UsersKey, raw); err != nil {
		return domain.UserAccount{}, fmt.Errorf("repo.CredentialStore.Add: %w", err)
	}
	return account, nil
}

// Verify returns the account whose normalized email and password both match.
// Unknown emails and wrong passwords both yield domain.ErrInvalidCredentials.
func (c *CredentialStore) Verify(ctx context.Context, email, password string) (domain.UserAccount, error) {
	email = domain.NormalizeEmail(email)

	users, err := c.list(ctx)
	if err != nil {
		return domain.UserAccount{}, err
	}
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			break
		}
		return u, nil
	}
	return domain.UserAccount{}, fmt.Errorf("repo.CredentialStore.Verify: %w", domain.ErrInvalidCredentials)
}

// list reads all accounts. A malformed payload is logged and treated as empty.
func (c *CredentialStore) list(ctx context.Context) ([]domain.UserAccount, error) {
	raw, ok, err := c.store.Get(ctx, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("repo.CredentialStore: read: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var users []domain.UserAccount
	if err := json.Unmarshal(raw, &users); err != nil {
		c.log.WarnContext(ctx, "treating malformed accounts as empty",
			"key", UsersKey, "error", fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err))
		return nil, nil
	}
	return users, nil
}
