package pagination_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/mariner/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultLimit: 50, MaxLimit: 200}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	var cfg pagination.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultLimit != 50 {
		t.Errorf("default_limit: got %d, want 50", cfg.DefaultLimit)
	}
	if cfg.MaxLimit != 200 {
		t.Errorf("max_limit: got %d, want 200", cfg.MaxLimit)
	}
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_DEFAULT_LIMIT", "10")
	t.Setenv("TEST_MAX_LIMIT", "25")

	var cfg pagination.Config
	err := cfg.Finalize(&pagination.ConfigEnv{
		DefaultLimit: "TEST_DEFAULT_LIMIT",
		MaxLimit:     "TEST_MAX_LIMIT",
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultLimit != 10 || cfg.MaxLimit != 25 {
		t.Errorf("got %+v, want {10 25}", cfg)
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := pagination.Config{DefaultLimit: 300, MaxLimit: 200}
	err := cfg.Finalize(nil)
	if err == nil || !strings.Contains(err.Error(), "cannot exceed") {
		t.Errorf("expected default/max validation error, got %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := defaultConfig()
	base.Merge(&pagination.Config{MaxLimit: 500})

	if base.DefaultLimit != 50 {
		t.Errorf("default_limit should remain 50, got %d", base.DefaultLimit)
	}
	if base.MaxLimit != 500 {
		t.Errorf("max_limit: got %d, want 500", base.MaxLimit)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		req        pagination.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"zero values take defaults", pagination.PageRequest{}, 50, 0},
		{"explicit values kept", pagination.PageRequest{Limit: 1, Offset: 2}, 1, 2},
		{"limit clamped", pagination.PageRequest{Limit: 10000}, 200, 0},
		{"negative limit defaults", pagination.PageRequest{Limit: -5}, 50, 0},
		{"negative offset zeroed", pagination.PageRequest{Limit: 5, Offset: -3}, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Normalize(defaultConfig())
			if req.Limit != tt.wantLimit {
				t.Errorf("limit: got %d, want %d", req.Limit, tt.wantLimit)
			}
			if req.Offset != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", req.Offset, tt.wantOffset)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
		wantSearch string
		wantSort   int
	}{
		{"empty", "", 50, 0, "", 0},
		{"limit and offset", "limit=1&offset=1", 1, 1, "", 0},
		{"non-numeric falls back", "limit=abc&offset=xyz", 50, 0, "", 0},
		{"search and sort", "search=sea&sort=-identifiedAt,id", 50, 0, "sea", 2},
		{"oversized limit", "limit=999", 200, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}

			req := pagination.PageRequestFromQuery(values, defaultConfig())

			if req.Limit != tt.wantLimit {
				t.Errorf("limit: got %d, want %d", req.Limit, tt.wantLimit)
			}
			if req.Offset != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", req.Offset, tt.wantOffset)
			}
			if tt.wantSearch == "" && req.Search != nil {
				t.Errorf("search: got %q, want nil", *req.Search)
			}
			if tt.wantSearch != "" && (req.Search == nil || *req.Search != tt.wantSearch) {
				t.Errorf("search: got %v, want %q", req.Search, tt.wantSearch)
			}
			if len(req.Sort) != tt.wantSort {
				t.Errorf("sort: got %d fields, want %d", len(req.Sort), tt.wantSort)
			}
		})
	}
}
