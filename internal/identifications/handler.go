package identifications

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JaimeStill/mariner/internal/vessels"
	"github.com/JaimeStill/mariner/internal/vision"
	"github.com/JaimeStill/mariner/pkg/handlers"
	"github.com/JaimeStill/mariner/pkg/pagination"
	"github.com/JaimeStill/mariner/pkg/routes"
)

// UploadLimits bounds the size of identify requests, in bytes.
type UploadLimits struct {
	Multipart int64
	Base64    int64
}

var allowedImageTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// multipartOverhead is allowed on top of the file limit for form boundaries and headers.
const multipartOverhead = 1 << 20

// Handler provides HTTP endpoints for identification and history.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	limits     UploadLimits
}

// Summary is the classification excerpt returned by the identify endpoints.
type Summary struct {
	BoatType   string         `json:"boatType"`
	Brand      *string        `json:"brand"`
	Model      *string        `json:"model"`
	Confidence float64        `json:"confidence"`
	Labels     []vision.Label `json:"labels"`
	Colors     []vision.Color `json:"colors"`
}

// IdentifyResponse is the body returned by the identify endpoints.
type IdentifyResponse struct {
	Success        bool            `json:"success"`
	ID             int64           `json:"id"`
	ImageURL       string          `json:"imageUrl"`
	Identification Summary         `json:"identification"`
	VesselData     *vessels.Vessel `json:"vesselData"`
	SimilarBoats   []vision.Label  `json:"similarBoats"`
}

// ListResponse is the body of GET /history.
type ListResponse struct {
	Success         bool             `json:"success"`
	Count           int              `json:"count"`
	Total           int              `json:"total"`
	Identifications []Identification `json:"identifications"`
}

// FindResponse is the body of GET /history/{id}.
type FindResponse struct {
	Success        bool            `json:"success"`
	Identification *Identification `json:"identification"`
}

// NewHandler creates a Handler with the given system, logger, pagination config and upload limits.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	limits UploadLimits,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "identifications"),
		pagination: pagination,
		limits:     limits,
	}
}

// Routes returns the identify and history route groups.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Schemas: schemas(),
		Children: []routes.Group{
			{
				Prefix:      "/identify",
				Tags:        []string{"Identify"},
				Description: "Boat photo identification",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: h.Identify, OpenAPI: identifyOp},
					{Method: "POST", Pattern: "/base64", Handler: h.IdentifyBase64, OpenAPI: identifyBase64Op},
				},
			},
			{
				Prefix:      "/history",
				Tags:        []string{"History"},
				Description: "Stored identifications",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: listOp},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: findOp},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: deleteOp},
				},
			},
		},
	}
}

// Identify accepts a multipart upload with the image in the "image" field.
func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.Multipart+multipartOverhead)

	file, header, err := r.FormFile("image")
	if err != nil {
		h.reject(w, uploadError(err))
		return
	}
	defer file.Close()

	if header.Size > h.limits.Multipart {
		h.reject(w, ErrTooLarge)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !isImage(header.Filename, contentType) {
		h.reject(w, ErrInvalidImage)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.reject(w, uploadError(err))
		return
	}

	h.identify(w, r, IdentifyCommand{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
}

// IdentifyBase64 accepts {"image": "<data URL or raw base64>"}. The image is
// stored as a .jpg regardless of its actual type.
func (h *Handler) IdentifyBase64(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.Base64)

	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.reject(w, ErrTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.Image == "" {
		h.reject(w, ErrNoImageData)
		return
	}

	data, err := decodeImage(req.Image)
	if err != nil {
		h.reject(w, ErrInvalidBase64)
		return
	}

	h.identify(w, r, IdentifyCommand{
		Filename:    "image.jpg",
		ContentType: "image/jpeg",
		Data:        data,
	})
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request, cmd IdentifyCommand) {
	res, err := h.sys.Identify(r.Context(), cmd)
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusInternalServerError, "Failed to analyze image", err)
		return
	}

	c := res.Classification
	handlers.RespondJSON(w, http.StatusOK, IdentifyResponse{
		Success:  true,
		ID:       res.Identification.ID,
		ImageURL: res.ImageURL,
		Identification: Summary{
			BoatType:   c.BoatType,
			Brand:      c.Brand,
			Model:      c.Model,
			Confidence: c.Confidence,
			Labels:     c.Labels,
			Colors:     c.Colors,
		},
		VesselData:   res.Vessel,
		SimilarBoats: c.SimilarEntities,
	})
}

// List returns identifications newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	items, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondStatus(w, h.logger, http.StatusInternalServerError, "Failed to fetch history", err)
		return
	}

	total, err := h.sys.Count(r.Context(), page, filters)
	if err != nil {
		handlers.RespondStatus(w, h.logger, http.StatusInternalServerError, "Failed to fetch history", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{
		Success:         true,
		Count:           len(items),
		Total:           total,
		Identifications: items,
	})
}

// FiltersFromQuery reads boat_type, mmsi, and vessel query parameters.
func FiltersFromQuery(values url.Values) Filters {
	return Filters{
		BoatType: strings.TrimSpace(values.Get("boat_type")),
		MMSI:     strings.TrimSpace(values.Get("mmsi")),
		Vessel:   strings.TrimSpace(values.Get("vessel")),
	}
}

// Find returns a single identification by its numeric id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.reject(w, err)
		return
	}

	i, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondStatus(w, h.logger, MapHTTPStatus(err), "Failed to fetch identification", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FindResponse{Success: true, Identification: i})
}

// Delete removes an identification by its numeric id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.reject(w, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondStatus(w, h.logger, MapHTTPStatus(err), "Failed to delete identification", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Identification deleted",
	})
}

func (h *Handler) reject(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

// parseID reads the id path value. Ids that are not integers cannot exist.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return id, nil
}

func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return ErrTooLarge
	}
	return ErrNoImage
}

// isImage reports whether both the file extension and the declared media
// type name an accepted image format.
func isImage(filename, contentType string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !allowedImageTypes[ext] {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	sub, ok := strings.CutPrefix(mediaType, "image/")
	return ok && allowedImageTypes[sub]
}

// decodeImage strips an optional data:image/<type>;base64, prefix and decodes the rest.
func decodeImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:image/") {
		if _, payload, ok := strings.Cut(s, ";base64,"); ok {
			s = payload
		}
	}
	s = strings.TrimSpace(s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImageData
	}
	return data, nil
}
