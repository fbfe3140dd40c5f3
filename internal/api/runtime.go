package api

import (
	"github.com/JaimeStill/mariner/internal/config"
	"github.com/JaimeStill/mariner/internal/identifications"
	"github.com/JaimeStill/mariner/internal/infrastructure"
	"github.com/JaimeStill/mariner/internal/workflow"
	"github.com/JaimeStill/mariner/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Uploads    identifications.UploadLimits
	ImageBase  string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		Uploads:        cfg.API.UploadLimits(),
		ImageBase:      cfg.API.BasePath + uploadsPrefix,
	}
}

// Workflow returns the identification workflow dependencies.
func (r *Runtime) Workflow() *workflow.Runtime {
	return &workflow.Runtime{
		Classifier: r.Vision,
		Directory:  r.Vessels,
		Logger:     r.Logger.With("system", "workflow"),
	}
}
