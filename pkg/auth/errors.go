package auth

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized indicates a missing or unusable credential.
	ErrUnauthorized = errors.New("authentication required")
	// ErrInvalidToken indicates a token that failed verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden indicates the principal lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")
)

// MapHTTPStatus maps auth errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidToken) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
