package favorites

import (
	"errors"
	"net/http"
)

// Domain errors for favorite operations.
var (
	ErrNotFound     = errors.New("favorite not found")
	ErrDuplicate    = errors.New("manga already favorited")
	ErrInvalidInput = errors.New("invalid favorite data")
)

// MapHTTPStatus maps favorite domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
