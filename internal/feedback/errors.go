package feedback

import (
	"errors"
	"net/http"
)

// Domain errors for feedback operations.
var (
	ErrMissingIdentification = errors.New("identification_id is required")
	ErrInvalidIdentification = errors.New("identification_id must be an integer")
	ErrDuplicate             = errors.New("feedback already exists")
	ErrNotFound              = errors.New("feedback not found")
)

// MapHTTPStatus maps feedback domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrMissingIdentification) || errors.Is(err, ErrInvalidIdentification) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
