// Package health exposes the controller's liveness/readiness surface and
// the Prometheus metrics endpoint behind one debug listener.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the coarse outcome of a single check.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Checker reports the health of one dependency (e.g. the car registry).
type Checker interface {
	Name() string
	Check(ctx context.Context) (Status, string)
}

// CheckResult is one checker's outcome, as rendered in the response body.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Response is the /healthz response body.
type Response struct {
	Status    Status                 `json:"status"`
	Uptime    float64                `json:"uptimeSeconds"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// RegistryChecker reports unhealthy if the car registry has lost every car,
// since a controller with zero cars cannot dispatch hall calls.
type RegistryChecker struct {
	Size func() int
}

func (c RegistryChecker) Name() string { return "registry" }

func (c RegistryChecker) Check(context.Context) (Status, string) {
	if c.Size() == 0 {
		return StatusUnhealthy, "no cars registered"
	}
	return StatusHealthy, ""
}

// Manager aggregates checkers behind one /healthz handler.
type Manager struct {
	startTime time.Time
	mu        sync.RWMutex
	checkers  []Checker
}

// NewManager creates a Manager whose uptime clock starts now.
func NewManager() *Manager {
	return &Manager{startTime: time.Now()}
}

// Register adds a checker, evaluated on every /healthz request.
func (m *Manager) Register(c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, c)
}

func (m *Manager) evaluate(ctx context.Context) Response {
	m.mu.RLock()
	checkers := append([]Checker(nil), m.checkers...)
	m.mu.RUnlock()

	resp := Response{
		Status:    StatusHealthy,
		Uptime:    time.Since(m.startTime).Seconds(),
		Timestamp: time.Now(),
		Checks:    make(map[string]CheckResult, len(checkers)),
	}
	for _, c := range checkers {
		status, msg := c.Check(ctx)
		resp.Checks[c.Name()] = CheckResult{Status: status, Message: msg}
		if status == StatusUnhealthy {
			resp.Status = StatusUnhealthy
		}
	}
	return resp
}

// Handler returns the ServeMux the controller binds its debug listener to:
// /healthz for liveness/readiness, /metrics for Prometheus scraping.
func (m *Manager) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		resp := m.evaluate(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if resp.Status != StatusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
