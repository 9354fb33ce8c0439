package comments

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("comment not found")
	ErrInvalidInput = errors.New("invalid comment input")
	ErrForbidden    = errors.New("comment does not belong to user")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
