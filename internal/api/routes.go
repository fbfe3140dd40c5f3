package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/JaimeStill/mariner/internal/config"
	"github.com/JaimeStill/mariner/internal/infrastructure"
	"github.com/JaimeStill/mariner/pkg/handlers"
	"github.com/JaimeStill/mariner/pkg/openapi"
	"github.com/JaimeStill/mariner/pkg/routes"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	spec := newSpec(cfg)
	routes.Register(mux, spec, "", groups(domain, runtime)...)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}

// Spec builds the OpenAPI document for the API module without serving it.
func Spec(cfg *config.Config, infra *infrastructure.Infrastructure) *openapi.Spec {
	runtime := NewRuntime(cfg, infra)
	spec := newSpec(cfg)
	routes.Register(http.NewServeMux(), spec, "", groups(NewDomain(runtime), runtime)...)
	return spec
}

func newSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.OpenAPI.Server(cfg.API.BasePath))
	return spec
}

func groups(domain *Domain, runtime *Runtime) []routes.Group {
	return []routes.Group{
		systemRoutes(),
		newUploadsHandler(runtime.Storage, runtime.Logger).routes(),
		domain.Identifications.Handler(runtime.Uploads).Routes(),
		domain.Feedback.Handler().Routes(),
		domain.Vessels.Handler().Routes(),
	}
}

func systemRoutes() routes.Group {
	return routes.Group{
		Prefix: "/health",
		Tags:   []string{"System"},
		Schemas: map[string]*openapi.Schema{
			"Health": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"status":    {Type: "string", Example: "ok"},
					"timestamp": {Type: "string", Format: "date-time"},
				},
			},
		},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: health,
				OpenAPI: &openapi.Operation{
					Summary: "Service liveness",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Service is up", "Health"),
					},
				},
			},
		},
	}
}

func health(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
