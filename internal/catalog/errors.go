package catalog

import (
	"errors"
	"net/http"
)

// Domain errors for catalog operations.
var (
	ErrNotFound           = errors.New("manga not found")
	ErrUnknownSource      = errors.New("unknown catalog source")
	ErrSourceUnavailable  = errors.New("catalog source unavailable")
	ErrInvalidQuery       = errors.New("invalid catalog query")
	ErrChapterUnavailable = errors.New("chapter not viewable on this source")
)

// MapHTTPStatus maps catalog domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnknownSource) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidQuery) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrChapterUnavailable) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrSourceUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
