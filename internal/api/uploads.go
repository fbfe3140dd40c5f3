package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/mariner/pkg/handlers"
	"github.com/JaimeStill/mariner/pkg/openapi"
	"github.com/JaimeStill/mariner/pkg/routes"
	"github.com/JaimeStill/mariner/pkg/storage"
)

const uploadsPrefix = "/uploads"

// uploadsHandler streams stored images back to clients at the URL recorded
// in each identification's image path.
type uploadsHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newUploadsHandler(store storage.System, logger *slog.Logger) *uploadsHandler {
	return &uploadsHandler{
		store:  store,
		logger: logger.With("handler", "uploads"),
	}
}

func (h *uploadsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: uploadsPrefix,
		Tags:   []string{"Uploads"},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "/{key...}",
				Handler: h.serve,
				OpenAPI: &openapi.Operation{
					Summary:    "Stream a stored image",
					Parameters: []*openapi.Parameter{openapi.PathParam("key", "string", "Storage key")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseBinary("Image bytes", "image/*"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

func (h *uploadsHandler) serve(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	blob, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondStatus(
			w, h.logger,
			storage.MapHTTPStatus(err), "Failed to read image", err,
		)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.Size > 0 {
		w.Header().Set(
			"Content-Length",
			strconv.FormatInt(blob.Size, 10),
		)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("stream upload interrupted", "key", key, "error", err)
	}
}
