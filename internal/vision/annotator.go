package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"google.golang.org/api/option"
	api "google.golang.org/api/vision/v1"
)

// Feature types requested from the Vision API.
const (
	FeatureLabels     = "LABEL_DETECTION"
	FeatureObjects    = "OBJECT_LOCALIZATION"
	FeatureProperties = "IMAGE_PROPERTIES"
	FeatureWeb        = "WEB_DETECTION"
)

// Annotator issues a single-feature annotation request for one image.
type Annotator interface {
	Annotate(ctx context.Context, content []byte, feature string) (*api.AnnotateImageResponse, error)
}

// ResponseError is an error status reported inside an annotation response.
type ResponseError struct {
	Feature string
	Code    int64
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: code %d: %s", e.Feature, e.Code, e.Message)
}

type googleAnnotator struct {
	images     *api.ImagesService
	maxResults int64
}

// NewAnnotator creates an Annotator backed by the Vision REST API. It returns
// ErrNotConfigured when neither an API key nor an existing credentials file is
// configured. Additional options are appended after those derived from cfg.
func NewAnnotator(ctx context.Context, cfg *Config, opts ...option.ClientOption) (Annotator, error) {
	var base []option.ClientOption

	switch {
	case cfg.APIKey != "":
		base = append(base, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsFile != "":
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: credentials file %s not found", ErrNotConfigured, cfg.CredentialsFile)
			}
			return nil, fmt.Errorf("stat credentials file: %w", err)
		}
		base = append(base, option.WithCredentialsFile(cfg.CredentialsFile))
	case len(opts) == 0:
		return nil, ErrNotConfigured
	}

	if cfg.Endpoint != "" {
		base = append(base, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := api.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}

	return &googleAnnotator{
		images:     svc.Images,
		maxResults: int64(cfg.MaxResults),
	}, nil
}

func (a *googleAnnotator) Annotate(ctx context.Context, content []byte, feature string) (*api.AnnotateImageResponse, error) {
	req := &api.BatchAnnotateImagesRequest{
		Requests: []*api.AnnotateImageRequest{
			{
				Image: &api.Image{Content: base64.StdEncoding.EncodeToString(content)},
				Features: []*api.Feature{
					{Type: feature, MaxResults: a.maxResults},
				},
			},
		},
	}

	resp, err := a.images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return nil, &ResponseError{Feature: feature, Message: "empty response"}
	}

	r := resp.Responses[0]
	if r.Error != nil && r.Error.Code != 0 {
		return nil, &ResponseError{Feature: feature, Code: r.Error.Code, Message: r.Error.Message}
	}

	return r, nil
}
