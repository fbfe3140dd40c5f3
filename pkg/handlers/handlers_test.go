package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/mariner/pkg/handlers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		data       any
		wantStatus int
	}{
		{
			name:       "200 with map",
			status:     http.StatusOK,
			data:       map[string]string{"key": "value"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "201 with struct",
			status:     http.StatusCreated,
			data:       struct{ ID int }{ID: 42},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondJSON(rec, tt.status, tt.data)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatus {
				t.Errorf("status: got %d, want %d", res.StatusCode, tt.wantStatus)
			}
			if ct := res.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type: got %s", ct)
			}

			body, _ := io.ReadAll(res.Body)
			var parsed map[string]any
			if err := json.Unmarshal(body, &parsed); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.RespondError(rec, discardLogger(), http.StatusBadRequest, errors.New("identification_id is required"))

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", res.StatusCode)
	}

	var parsed map[string]string
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if parsed["error"] != "identification_id is required" {
		t.Errorf("error: got %s", parsed["error"])
	}
}

func TestRespondStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
		want   string
	}{
		{"client error keeps cause", http.StatusNotFound, errors.New("Identification not found"), "Identification not found"},
		{"server error hides cause", http.StatusInternalServerError, errors.New("no such table: feedback"), "Failed to fetch stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			handlers.RespondStatus(rec, discardLogger(), tt.status, "Failed to fetch stats", tt.err)

			if rec.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.status)
			}

			var parsed map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if parsed["error"] != tt.want {
				t.Errorf("error: got %q, want %q", parsed["error"], tt.want)
			}
			if len(parsed) != 1 {
				t.Errorf("body: got %v, want only error", parsed)
			}
		})
	}
}

func TestRespondFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.RespondFailure(rec, discardLogger(), http.StatusInternalServerError, "Failed to analyze image", errors.New("disk full"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}

	var parsed map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if parsed["error"] != "Failed to analyze image" {
		t.Errorf("error: got %q", parsed["error"])
	}
	if parsed["message"] != "disk full" {
		t.Errorf("message: got %q", parsed["message"])
	}
}
