package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordingHTTPMetrics struct {
	statuses  []int
	latencies []time.Duration
}

func (m *recordingHTTPMetrics) RecordHTTPStatus(statusCode int) {
	m.statuses = append(m.statuses, statusCode)
}

func (m *recordingHTTPMetrics) RecordRequestLatency(duration time.Duration) {
	m.latencies = append(m.latencies, duration)
}

func TestMetricsMiddleware_RecordsStatusAndLatency(t *testing.T) {
	rec := &recordingHTTPMetrics{}
	mw := NewMetricsMiddleware(rec)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/services", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if len(rec.statuses) != 1 || rec.statuses[0] != http.StatusCreated {
		t.Errorf("statuses = %v, want [201]", rec.statuses)
	}
	if len(rec.latencies) != 1 {
		t.Fatalf("latencies = %v, want one sample", rec.latencies)
	}
	if rec.latencies[0] < 0 {
		t.Errorf("latency = %v, want non-negative", rec.latencies[0])
	}
}

func TestMetricsMiddleware_DefaultsTo200WhenHandlerWritesBody(t *testing.T) {
	rec := &recordingHTTPMetrics{}
	mw := NewMetricsMiddleware(rec)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if len(rec.statuses) != 1 || rec.statuses[0] != http.StatusOK {
		t.Errorf("statuses = %v, want [200]", rec.statuses)
	}
}
