// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/mariner/internal/config"
	"github.com/JaimeStill/mariner/internal/infrastructure"
	"github.com/JaimeStill/mariner/pkg/middleware"
	"github.com/JaimeStill/mariner/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.NewWithMiddleware(
		cfg.API.BasePath,
		mux,
		middleware.NewDefault(&cfg.API.CORS, runtime.Logger),
	)
	m.Use(infra.Metrics.Middleware())

	return m, nil
}
