package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/grand-plaza/internal/domain"
	"github.com/pkordes/grand-plaza/internal/handler"
)

func TestRegister_201(t *testing.T) {
	var gotName, gotEmail, gotConfirm string
	auth := &mockAuthServicer{
		register: func(_ context.Context, name, email, _, confirm string) (domain.Session, error) {
			gotName, gotEmail, gotConfirm = name, email, confirm
			return domain.Session{Name: name, Email: email}, nil
		},
	}

	rec := do(t, newHTTPHandler(nil, auth), http.MethodPost, "/auth/register", map[string]string{
		"name": "Asha", "email": "asha@x.com", "password": "pw", "confirmPassword": "pw",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Asha", gotName)
	assert.Equal(t, "asha@x.com", gotEmail)
	assert.Equal(t, "pw", gotConfirm)

	var sess handler.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.Equal(t, "asha@x.com", sess.Email)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"duplicate", fmt.Errorf("repo.CredentialStore.Add: %w", domain.ErrEmailAlreadyExists), http.StatusConflict, "conflict"},
		{"mismatch", domain.ErrPasswordMismatch, http.StatusUnprocessableEntity, "validation_error"},
		{"incomplete", domain.ErrIncompleteFields, http.StatusUnprocessableEntity, "validation_error"},
		{"unexpected", fmt.Errorf("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuthServicer{
				register: func(context.Context, string, string, string, string) (domain.Session, error) {
					return domain.Session{}, tc.err
				},
			}
			rec := do(t, newHTTPHandler(nil, auth), http.MethodPost, "/auth/register", map[string]string{"name": "x"})

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.body, decodeError(t, rec).Code)
		})
	}
}

func TestRegister_DuplicateMessage(t *testing.T) {
	auth := &mockAuthServicer{
		register: func(context.Context, string, string, string, string) (domain.Session, error) {
			return domain.Session{}, fmt.Errorf("repo.CredentialStore.Add: %w", domain.ErrEmailAlreadyExists)
		},
	}

	rec := do(t, newHTTPHandler(nil, auth), http.MethodPost, "/auth/register", map[string]string{})

	assert.Equal(t, "an account with this email already exists", decodeError(t, rec).Message)
}

func TestRegister_422_MalformedBody(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, &mockAuthServicer{}), http.MethodPost, "/auth/register", "not an object")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogin(t *testing.T) {
	auth := &mockAuthServicer{
		login: func(_ context.Context, email, password string) (domain.Session, error) {
			if password != "secret" {
				return domain.Session{}, fmt.Errorf("repo.CredentialStore.Verify: %w", domain.ErrInvalidCredentials)
			}
			return domain.Session{Name: "Asha", Email: email}, nil
		},
	}
	h := newHTTPHandler(nil, auth)

	rec := do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "asha@x.com", "password": "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "asha@x.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "unauthenticated", detail.Code)
	assert.Equal(t, "invalid email or password", detail.Message)
}

func TestLogout_204(t *testing.T) {
	called := false
	auth := &mockAuthServicer{logout: func(context.Context) error { called = true; return nil }}

	rec := do(t, newHTTPHandler(nil, auth), http.MethodPost, "/auth/logout", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}

func TestGetSession(t *testing.T) {
	signedIn := false
	auth := &mockAuthServicer{current: func(context.Context) (domain.Session, error) {
		if !signedIn {
			return domain.Session{}, domain.ErrUnauthenticated
		}
		return domain.Session{Name: "Asha", Email: "asha@x.com"}, nil
	}}
	h := newHTTPHandler(nil, auth)

	rec := do(t, h, http.MethodGet, "/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	signedIn = true
	rec = do(t, h, http.MethodGet, "/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sess handler.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.Equal(t, "Asha", sess.Name)
}
