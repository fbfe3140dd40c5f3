package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/mariner/internal/identifications"
	"github.com/JaimeStill/mariner/pkg/formatting"
	"github.com/JaimeStill/mariner/pkg/middleware"
	"github.com/JaimeStill/mariner/pkg/openapi"
	"github.com/JaimeStill/mariner/pkg/pagination"
)

const (
	EnvAPIBasePath      = "MARINER_API_BASE_PATH"
	EnvAPIMaxUploadSize = "MARINER_API_MAX_UPLOAD_SIZE"
	EnvAPIMaxBase64Size = "MARINER_API_MAX_BASE64_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "MARINER_CORS_ENABLED",
	Origins:          "MARINER_CORS_ORIGINS",
	AllowedMethods:   "MARINER_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "MARINER_CORS_ALLOWED_HEADERS",
	AllowCredentials: "MARINER_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "MARINER_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "MARINER_OPENAPI_TITLE",
	Description: "MARINER_OPENAPI_DESCRIPTION",
	ServerURL:   "MARINER_OPENAPI_SERVER_URL",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultLimit: "MARINER_PAGINATION_DEFAULT_LIMIT",
	MaxLimit:     "MARINER_PAGINATION_MAX_LIMIT",
}

// APIConfig holds API routing, CORS, pagination, OpenAPI, and upload settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	MaxBase64Size string                `toml:"max_base64_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// UploadLimits returns the parsed multipart and base64 body limits.
func (c *APIConfig) UploadLimits() identifications.UploadLimits {
	multipart, _ := formatting.ParseBytes(c.MaxUploadSize)
	b64, _ := formatting.ParseBytes(c.MaxBase64Size)
	return identifications.UploadLimits{
		Multipart: multipart,
		Base64:    b64,
	}
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.MaxBase64Size != "" {
		c.MaxBase64Size = overlay.MaxBase64Size
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if c.MaxBase64Size == "" {
		c.MaxBase64Size = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvAPIMaxBase64Size); v != "" {
		c.MaxBase64Size = v
	}
}

func (c *APIConfig) validate() error {
	if n, err := formatting.ParseBytes(c.MaxUploadSize); err != nil || n <= 0 {
		return fmt.Errorf("invalid max_upload_size: %q", c.MaxUploadSize)
	}
	if n, err := formatting.ParseBytes(c.MaxBase64Size); err != nil || n <= 0 {
		return fmt.Errorf("invalid max_base64_size: %q", c.MaxBase64Size)
	}
	return nil
}
