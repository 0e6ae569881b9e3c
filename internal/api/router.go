package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"beerbot/internal/config"
	"beerbot/internal/logger"
)

// NewRouter wires the decision endpoint, the health check and middleware.
func NewRouter(cfg *config.Config, decisionHandler http.Handler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	r.Handle("/api/decision", rateLimit(limiter, decisionHandler)).Methods(http.MethodPost)

	// Render health checks hit this.
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet, http.MethodHead)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "POST required")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}
