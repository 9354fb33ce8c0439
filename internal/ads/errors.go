package ads

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("ad slot not found")
	ErrDuplicate    = errors.New("ad slot name already exists")
	ErrInvalidInput = errors.New("invalid ad slot input")
	ErrNoBanner     = errors.New("ad slot has no banner image")
	ErrImageTooBig  = errors.New("banner image exceeds the upload limit")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoBanner):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrImageTooBig):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
