package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/sitedesk/internal/logger"
	"github.com/hitoshi/sitedesk/internal/model"
)

func TestLoggingMiddleware_LogsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Setup(&buf, slog.LevelInfo)

	mw := NewLoggingMiddleware(l)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log, got: %v\nraw: %s", err, buf.String())
	}

	if entry["msg"] != "http_request" {
		t.Errorf("msg = %q, want %q", entry["msg"], "http_request")
	}
	if entry["method"] != "GET" {
		t.Errorf("method = %q, want GET", entry["method"])
	}
	if entry["path"] != "/api/services" {
		t.Errorf("path = %q", entry["path"])
	}
	if entry["status"] != float64(200) {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if entry["request_id"] == "" || entry["request_id"] == nil {
		t.Error("expected non-empty request_id")
	}
	if _, ok := entry["duration_ms"]; !ok {
		t.Error("expected duration_ms field")
	}
}

func TestLoggingMiddleware_EscalatesLevelFor5xx(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Setup(&buf, slog.LevelInfo)

	mw := NewLoggingMiddleware(l)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %q, want ERROR for 5xx", entry["level"])
	}
}

func TestLoggingMiddleware_WarnsFor4xx(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Setup(&buf, slog.LevelInfo)

	mw := NewLoggingMiddleware(l)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %q, want WARN for 4xx", entry["level"])
	}
}

func TestLoggingMiddleware_IncludesAdminWhenAuthenticated(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Setup(&buf, slog.LevelInfo)

	mw := NewLoggingMiddleware(l)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	ctx := ContextWithPrincipal(context.Background(), &model.Principal{ID: 1, Username: "admin"})
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	if entry["admin"] != "admin" {
		t.Errorf("admin = %q, want %q", entry["admin"], "admin")
	}
}
