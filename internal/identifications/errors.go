package identifications

import (
	"errors"
	"net/http"
)

// Domain errors for identification operations. Messages are returned to
// clients verbatim.
var (
	ErrNotFound      = errors.New("Identification not found")
	ErrDuplicate     = errors.New("Identification already exists")
	ErrNoImage       = errors.New("No image provided")
	ErrNoImageData   = errors.New("No image data provided")
	ErrInvalidImage  = errors.New("Only image files are allowed")
	ErrInvalidBase64 = errors.New("Invalid image data")
	ErrTooLarge      = errors.New("Image exceeds the maximum upload size")
)

// MapHTTPStatus maps identification domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNoImage),
		errors.Is(err, ErrNoImageData),
		errors.Is(err, ErrInvalidImage),
		errors.Is(err, ErrInvalidBase64):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
