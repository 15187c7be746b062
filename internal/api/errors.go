package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/vortex-api/internal/domain"
	"github.com/phrazzld/vortex-api/internal/service/auth"
	"github.com/phrazzld/vortex-api/internal/service/review"
	"github.com/phrazzld/vortex-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, review.ErrNoActiveSession),
		errors.Is(err, review.ErrNoMission):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, review.ErrSessionActive):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, review.ErrInvalidMode),
		errors.Is(err, domain.ErrWordTermEmpty),
		errors.Is(err, domain.ErrWordDefinitionEmpty),
		errors.Is(err, domain.ErrCollectionNameEmpty):
		return http.StatusBadRequest

	// Special cases
	case errors.Is(err, review.ErrNothingToReview):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, review.ErrNoActiveSession):
		return "No review session in progress"

	case errors.Is(err, review.ErrNoMission):
		return "No mission for today"

	case errors.Is(err, review.ErrSessionActive):
		return "A review session is already in progress"

	case errors.Is(err, review.ErrInvalidMode):
		return "Invalid session mode"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicateTerm):
		return "A word with this term already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.Is(err, domain.ErrWordTermEmpty),
		errors.Is(err, domain.ErrWordDefinitionEmpty):
		return "Term and definition are required"

	case errors.Is(err, domain.ErrCollectionNameEmpty):
		return "Collection name is required"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
