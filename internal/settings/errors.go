package settings

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("setting not found")
	ErrInvalidKey = errors.New("invalid setting key")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
