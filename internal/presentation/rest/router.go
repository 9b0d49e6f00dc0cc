package rest

import (
	"log/slog"
	"net/http"
)

// RouterConfig wires the HTTP handlers together.
type RouterConfig struct {
	Prediction     *PredictionHandler
	Health         *HealthHandler
	Metrics        http.Handler
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the service's HTTP handler.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	cfg.Prediction.RegisterRoutes(mux)
	cfg.Health.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	mux.HandleFunc("/", notFound)

	var handler http.Handler = mux
	handler = CORSMiddleware(cfg.AllowedOrigins, cfg.Logger)(handler)
	handler = RecoveryMiddleware(cfg.Logger)(handler)
	handler = LoggingMiddleware(cfg.Logger)(handler)
	return handler
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Endpoint not found")
}
