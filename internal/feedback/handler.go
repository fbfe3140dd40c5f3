package feedback

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/mariner/pkg/handlers"
	"github.com/JaimeStill/mariner/pkg/openapi"
	"github.com/JaimeStill/mariner/pkg/routes"
)

// Handler provides HTTP endpoints for feedback operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// CreateRequest is the body of POST /feedback. IdentificationID accepts a
// JSON number or a numeric string.
type CreateRequest struct {
	IdentificationID json.RawMessage `json:"identification_id"`
	IsCorrect        bool            `json:"is_correct"`
	FeedbackText     *string         `json:"feedback_text"`
}

// CreateResponse is the body returned after feedback is recorded.
type CreateResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// StatsResponse is the body of GET /feedback/stats.
type StatsResponse struct {
	Success bool   `json:"success"`
	Stats   *Stats `json:"stats"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "feedback"),
	}
}

// Routes returns the route group definition for feedback endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/feedback",
		Tags:        []string{"Feedback"},
		Description: "Identification feedback",
		Schemas: map[string]*openapi.Schema{
			"FeedbackRequest": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"identification_id": {Type: "integer"},
					"is_correct":        {Type: "boolean", Default: false},
					"feedback_text":     {Type: "string"},
				},
				Required: []string{"identification_id"},
			},
			"FeedbackCreated": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"success": {Type: "boolean"},
					"id":      {Type: "integer"},
					"message": {Type: "string"},
				},
			},
			"FeedbackStats": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"success": {Type: "boolean"},
					"stats": {
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"total":           {Type: "integer"},
							"correct_count":   {Type: "integer"},
							"incorrect_count": {Type: "integer"},
						},
					},
				},
			},
		},
		Routes: []routes.Route{
			{
				Method:  "POST",
				Pattern: "",
				Handler: h.Create,
				OpenAPI: &openapi.Operation{
					Summary:     "Submit feedback on an identification",
					RequestBody: openapi.RequestBodyJSON("FeedbackRequest", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Feedback recorded", "FeedbackCreated"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method:  "GET",
				Pattern: "/stats",
				Handler: h.Stats,
				OpenAPI: &openapi.Operation{
					Summary: "Feedback accuracy statistics",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Aggregate counts", "FeedbackStats"),
					},
				},
			},
		},
	}
}

// Create records feedback for an identification.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	id, err := parseIdentificationID(req.IdentificationID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	f, err := h.sys.Create(r.Context(), CreateCommand{
		IdentificationID: id,
		IsCorrect:        req.IsCorrect,
		FeedbackText:     req.FeedbackText,
	})
	if err != nil {
		handlers.RespondStatus(w, h.logger, MapHTTPStatus(err), "Failed to save feedback", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CreateResponse{
		Success: true,
		ID:      f.ID,
		Message: "Thank you for your feedback!",
	})
}

// Stats returns aggregate feedback counts.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.sys.Stats(r.Context())
	if err != nil {
		handlers.RespondStatus(w, h.logger, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatsResponse{Success: true, Stats: s})
}

// parseIdentificationID treats absent, null, empty and zero values as missing.
func parseIdentificationID(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrMissingIdentification
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, ErrInvalidIdentification
		}
	} else {
		s = string(raw)
	}

	if s == "" || s == "0" {
		return 0, ErrMissingIdentification
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidIdentification
	}
	return id, nil
}
