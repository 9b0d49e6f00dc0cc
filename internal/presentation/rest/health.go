package rest

import (
	"net/http"
	"time"
)

// ReadinessChecker reports whether the model artifacts are loaded.
type ReadinessChecker interface {
	Loaded() bool
}

// HealthHandler provides HTTP health check endpoints for the prediction service.
type HealthHandler struct {
	service   string
	readiness ReadinessChecker
	startTime time.Time
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(service string, readiness ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		service:   service,
		readiness: readiness,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for /health and /healthz.
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	ModelLoaded bool   `json:"model_loaded"`
	Uptime      string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	mux.HandleFunc("GET /ping", h.Ping)
}

// Health reports model status: 200 when loaded, 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	loaded := h.readiness.Loaded()
	resp := HealthResponse{
		Status:      "healthy",
		Service:     h.service,
		ModelLoaded: loaded,
		Uptime:      time.Since(h.startTime).String(),
	}
	status := http.StatusOK
	if !loaded {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// Healthz handles liveness probe requests. The process is live even when the
// model is not.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Service:     h.service,
		ModelLoaded: h.readiness.Loaded(),
		Uptime:      time.Since(h.startTime).String(),
	})
}

// Readyz handles readiness probe requests.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		Status:  "ready",
		Service: h.service,
		Checks:  map[string]string{"artifacts": "ok"},
	}
	status := http.StatusOK
	if !h.readiness.Loaded() {
		resp.Status = "not ready"
		resp.Checks["artifacts"] = "not loaded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// Ping answers with a plain-text pong.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
