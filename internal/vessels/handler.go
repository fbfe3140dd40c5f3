package vessels

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/mariner/pkg/handlers"
	"github.com/JaimeStill/mariner/pkg/openapi"
	"github.com/JaimeStill/mariner/pkg/routes"
)

// Handler provides HTTP endpoints for vessel search.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Success bool     `json:"success"`
	Results []Vessel `json:"results"`
}

// VesselResponse is the body of GET /search/vessel/{mmsi}.
type VesselResponse struct {
	Success bool    `json:"success"`
	Vessel  *Vessel `json:"vessel"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "vessels"),
	}
}

// Routes returns the route group definition for vessel endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/search",
		Tags:        []string{"Vessels"},
		Description: "Vessel registry search",
		Schemas:     schemas(),
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: h.Search,
				OpenAPI: &openapi.Operation{
					Summary: "Search vessels by identifier, name, or type",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("q", "string", "Free-text vessel name", false),
						openapi.QueryParam("type", "string", "Vessel type hint", false),
						openapi.QueryParam("mmsi", "string", "Maritime Mobile Service Identity", false),
						openapi.QueryParam("imo", "string", "IMO number", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Matching vessels", "VesselSearch"),
					},
				},
			},
			{
				Method:  "GET",
				Pattern: "/vessel/{mmsi}",
				Handler: h.Vessel,
				OpenAPI: &openapi.Operation{
					Summary:    "Look up a vessel by MMSI",
					Parameters: []*openapi.Parameter{openapi.PathParam("mmsi", "string", "Maritime Mobile Service Identity")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Vessel record", "VesselLookup"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// Search resolves the q, type, mmsi and imo query parameters. Results is
// always an array.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hints := Hints{
		Query: q.Get("q"),
		Type:  q.Get("type"),
		MMSI:  q.Get("mmsi"),
		IMO:   q.Get("imo"),
	}

	handlers.RespondJSON(w, http.StatusOK, SearchResponse{
		Success: true,
		Results: h.sys.Search(r.Context(), hints),
	})
}

// Vessel returns the vessel with the MMSI path parameter.
func (h *Handler) Vessel(w http.ResponseWriter, r *http.Request) {
	v := h.sys.LookupMMSI(r.Context(), r.PathValue("mmsi"))
	if v == nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrNotFound), ErrNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, VesselResponse{Success: true, Vessel: v})
}

func schemas() map[string]*openapi.Schema {
	str := &openapi.Schema{Type: "string"}
	vessel := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":     str,
			"mmsi":     str,
			"imo":      str,
			"type":     str,
			"length":   str,
			"tonnage":  str,
			"owner":    str,
			"location": str,
			"flag":     str,
			"source":   {Type: "string", Enum: []any{string(SourceLive), string(SourceDemo)}},
			"note":     str,
		},
		Required: []string{"name", "source"},
	}

	return map[string]*openapi.Schema{
		"Vessel": vessel,
		"VesselSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"results": {Type: "array", Items: openapi.SchemaRef("Vessel")},
			},
		},
		"VesselLookup": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"vessel":  openapi.SchemaRef("Vessel"),
			},
		},
	}
}
