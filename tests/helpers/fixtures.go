// Package helpers provides an in-process stand-in for the traffic backend
// so integration tests can exercise the whole engine over real HTTP.
package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/theoremus-urban-solutions/traffic-viz/config"
)

// BackendState is the mutable upstream state a test controls.
type BackendState struct {
	Nodes   []map[string]any
	Edges   []map[string]any
	Mode    string
	Signals map[string]string
	Queues  map[string]int
	Route   map[string]any

	FailLive  bool
	FailRoute bool

	RouteRequests []map[string]any
}

// Backend is an httptest server speaking the four-endpoint contract.
type Backend struct {
	mu    sync.Mutex
	state BackendState
	srv   *httptest.Server
}

// NewBackend starts a stub backend. It is closed via t.Cleanup.
func NewBackend(t *testing.T, state BackendState) *Backend {
	t.Helper()
	if state.Mode == "" {
		state.Mode = "MOCK"
	}
	b := &Backend{state: state}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", b.handleHealth)
	mux.HandleFunc("/api/config", b.handleConfig)
	mux.HandleFunc("/api/live-data", b.handleLiveData)
	mux.HandleFunc("/api/route", b.handleRoute)

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

// URL returns the stub's base URL.
func (b *Backend) URL() string { return b.srv.URL }

// Config returns an engine configuration pointed at the stub.
func (b *Backend) Config() config.AppConfig {
	cfg := config.Default()
	cfg.Upstream.BaseURL = b.srv.URL
	return cfg
}

// Update mutates the upstream state under lock.
func (b *Backend) Update(fn func(*BackendState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.state)
}

// RouteRequests returns the bodies of every /api/route call so far.
func (b *Backend) RouteRequests() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, len(b.state.RouteRequests))
	copy(out, b.state.RouteRequests)
	return out
}

func (b *Backend) handleHealth(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, map[string]any{
		"status":  "healthy",
		"service": "stub backend",
		"nodes":   len(b.state.Nodes),
	})
}

func (b *Backend) handleConfig(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	nodes := b.state.Nodes
	if nodes == nil {
		nodes = []map[string]any{}
	}
	edges := b.state.Edges
	if edges == nil {
		edges = []map[string]any{}
	}
	writeJSON(w, map[string]any{"nodes": nodes, "edges": edges})
}

func (b *Backend) handleLiveData(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state.FailLive {
		http.Error(w, "upstream down", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{
		"timestamp": "2026-01-01T00:00:00Z",
		"mode":      b.state.Mode,
		"signals":   orEmptySignals(b.state.Signals),
		"queues":    orEmptyQueues(b.state.Queues),
		"metrics": map[string]any{
			"queue_length":  42,
			"avg_wait_time": 63.0,
			"carbon_offset": 1.25,
			"ai_confidence": 98.7,
		},
	})
}

func (b *Backend) handleRoute(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.state.RouteRequests = append(b.state.RouteRequests, body)
	if b.state.FailRoute {
		http.Error(w, "no path", http.StatusInternalServerError)
		return
	}
	writeJSON(w, b.state.Route)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func orEmptySignals(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptyQueues(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

// TwoNodeState is the canonical A(0,0) / B(1,1) scenario topology.
func TwoNodeState() BackendState {
	return BackendState{
		Nodes: []map[string]any{
			{"id": "A", "lat": 0.0, "lon": 0.0, "name": "Intersection A"},
			{"id": "B", "lat": 1.0, "lon": 1.0, "name": "Intersection B"},
		},
		Edges: []map[string]any{
			{"source": "A", "target": "B", "distance": 1500.0},
		},
		Mode:    "MOCK",
		Signals: map[string]string{"A": "GREEN", "B": "RED"},
		Queues:  map[string]int{},
		Route: map[string]any{
			"path": []string{"A", "B"},
			"path_latlon": []map[string]any{
				{"id": "A", "lat": 0.0, "lon": 0.0},
				{"id": "B", "lat": 1.0, "lon": 1.0},
			},
			"estimated_duration_s": 120,
			"estimated_distance_m": 1500,
		},
	}
}
