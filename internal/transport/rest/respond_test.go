package rest

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

func TestHandleError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("name", "required"), http.StatusBadRequest},
		{"index out of range", fmt.Errorf("step 42: %w", domain.ErrIndexOutOfRange), http.StatusBadRequest},
		{"not found", fmt.Errorf("dream 7: %w", domain.ErrNotFound), http.StatusNotFound},
		{"already exists", fmt.Errorf("profile: %w", domain.ErrAlreadyExists), http.StatusConflict},
		{"generation failed", domain.NewGenerationError("image", errors.New("boom")), http.StatusBadGateway},
		{"store unavailable", fmt.Errorf("dream: %w", domain.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			handleError(rec, req, logger, tt.err)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestHandleError_UnknownErrorIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handleError(rec, req, logger, errors.New("pool exploded"))

	if !bytes.Contains(buf.Bytes(), []byte("pool exploded")) {
		t.Errorf("expected log to contain the error, got %q", buf.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("pool exploded")) {
		t.Error("internal error details must not leak into the response")
	}
}

func TestPathID(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	var gotID int64
	var gotErr error
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = pathID(r, "id")
	})

	for _, tt := range []struct {
		raw     string
		wantID  int64
		wantErr bool
	}{
		{"7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/"+tt.raw, nil))

		if tt.wantErr {
			if !errors.Is(gotErr, domain.ErrValidation) {
				t.Errorf("pathID(%q) err = %v, want validation error", tt.raw, gotErr)
			}
			continue
		}
		if gotErr != nil {
			t.Errorf("pathID(%q) unexpected error: %v", tt.raw, gotErr)
		}
		if gotID != tt.wantID {
			t.Errorf("pathID(%q) = %d, want %d", tt.raw, gotID, tt.wantID)
		}
	}
}

func TestPathStage(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	var gotStage domain.StageKey
	var gotErr error
	mux.HandleFunc("GET /stages/{stage}", func(w http.ResponseWriter, r *http.Request) {
		gotStage, gotErr = pathStage(r)
	})

	for _, key := range []string{"select", "project", "expect", "collect"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stages/"+key, nil))
		if gotErr != nil {
			t.Errorf("pathStage(%q) unexpected error: %v", key, gotErr)
		}
		if string(gotStage) != key {
			t.Errorf("pathStage(%q) = %q", key, gotStage)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stages/bogus", nil))
	if !errors.Is(gotErr, domain.ErrValidation) {
		t.Errorf("pathStage(bogus) err = %v, want validation error", gotErr)
	}
}
