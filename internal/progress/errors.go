package progress

import (
	"errors"
	"net/http"
)

// Domain errors for reading progress operations.
var (
	ErrNotFound     = errors.New("reading progress not found")
	ErrInvalidInput = errors.New("invalid reading progress data")
)

// MapHTTPStatus maps progress domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
