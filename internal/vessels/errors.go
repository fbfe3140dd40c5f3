package vessels

import (
	"errors"
	"net/http"
)

// Domain errors for vessel lookups.
var (
	ErrNotFound         = errors.New("Vessel not found")
	ErrUnexpectedStatus = errors.New("unexpected registry status")
	ErrMalformed        = errors.New("malformed registry response")
)

// MapHTTPStatus maps vessel domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
