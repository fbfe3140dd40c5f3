package routes

import (
	"net/http"

	"github.com/JaimeStill/mariner/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler. OpenAPI is optional
// operation metadata published to the API document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
