// Package handlers exposes the categorization engine over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/pennywise/internal/engine"
	"github.com/Veraticus/pennywise/internal/service"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Dependencies holds the services required by the handlers.
type Dependencies struct {
	Storage service.Storage
	Engine  *engine.Engine
	Logger  *slog.Logger
}

// NewRouter registers every route on a new ServeMux.
func NewRouter(d *Dependencies) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", d.HandleHealth)
	mux.HandleFunc("POST /api/categorization/suggest", d.HandleSuggest)
	mux.HandleFunc("POST /api/categorization/auto-categorize", d.HandleAutoCategorize)
	mux.HandleFunc("POST /api/categorization/batch-categorize", d.HandleBatchCategorize)
	mux.HandleFunc("POST /api/categorization/create-rule", d.HandleCreateRule)
	mux.HandleFunc("GET /api/categorization/analyze-patterns", d.HandleAnalyzePatterns)

	return LogRequests(d.Logger, mux)
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

type required struct {
	name    string
	missing bool
}

// firstMissing returns the name of the first missing field, or "".
func firstMissing(fields ...required) string {
	for _, f := range fields {
		if f.missing {
			return f.name
		}
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LogRequests logs one line per request with its status and duration.
func LogRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
