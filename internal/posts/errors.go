package posts

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("post not found")
	ErrDuplicate    = errors.New("post slug already exists")
	ErrInvalidInput = errors.New("invalid post input")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
