package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/grand-plaza/internal/domain"
)

const (
	codeValidation           = "validation_error"
	codeUnauthenticated      = "unauthenticated"
	codeConflict             = "conflict"
	codeNotFound             = "not_found"
	codeConfirmationRequired = "confirmation_required"
	codeTooLarge             = "request_too_large"
	codeInternal             = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service error onto a status code and error body.
// notFound is the message used for domain.ErrNotFound, because the handler is
// the layer that knows what was being looked up.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, unwrapMessage(err))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, codeConflict, unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFound)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// decodeBody reads a JSON request body into v, writing the error response
// itself when that fails. It reports whether the caller should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
		return false
	}
	writeError(w, http.StatusUnprocessableEntity, codeValidation, "invalid request body")
	return false
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "repo.CredentialStore.Verify: validation error: invalid email or password"
// → "invalid email or password"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
