package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/run-coach/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Port:                8080,
		ReportsMaxRangeDays: 366,
	}
	return New(cfg)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", resp["status"])
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

// Exercises the wired routes end to end on in-memory storage:
// sync two runs, read the snapshot back, ask the coach about the week.
func TestRoutesEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	syncBody := `{"runs":[
		{"date":"2025-03-10","distance_km":10.5,"duration_min":58},
		{"date":"2025-03-12","distance_km":6.2,"duration_min":35}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/runs/sync", strings.NewReader(syncBody))
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("sync status = %d, body = %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/stats/snapshot?start=2025-03-10&end=2025-03-17", nil)
	w = httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("snapshot status = %d, body = %s", w.Code, w.Body.String())
	}

	var snap struct {
		Totals struct {
			Sessions int `json:"sessions"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Totals.Sessions != 2 {
		t.Errorf("sessions = %d, want 2", snap.Totals.Sessions)
	}

	// The held snapshot covers another week, so the coach must ask for the
	// one the question targets.
	chatBody := `{
		"message": "Combien de km la semaine dernière ?",
		"snapshot": {"period": {"start": "2025-03-10", "end": "2025-03-17"}}
	}`
	req = httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(chatBody))
	w = httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("chat status = %d, body = %s", w.Code, w.Body.String())
	}

	var chat struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &chat); err != nil {
		t.Fatal(err)
	}
	if chat.Type != "REQUEST_SNAPSHOT" {
		t.Errorf("chat type = %q, want REQUEST_SNAPSHOT", chat.Type)
	}
}
