package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/turnos/turnos/internal/config"
	"github.com/turnos/turnos/pkg/rlog"
)

// NewServer builds the HTTP server: router, routes, and the
// middleware chain, outermost first: CORS (when enabled) -> requestID
// -> logging.
func NewServer(cfg *config.APIConfig, roster config.RosterConfig, addr string) *http.Server {
	handler := NewRosterHandler(roster)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", handler.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/rosters/generate", handler.Generate).Methods(http.MethodPost)
	api.HandleFunc("/rosters/evaluate", handler.Evaluate).Methods(http.MethodPost)
	api.HandleFunc("/rosters/vocabulary", handler.Vocabulary).Methods(http.MethodGet)

	var chain http.Handler = router
	chain = loggingMiddleware(chain)
	chain = requestIDMiddleware(chain)
	if cfg.CORS.Enabled {
		chain = corsMiddleware(cfg.CORS.Origins, chain)
	}

	return &http.Server{
		Addr:         addr,
		Handler:      chain,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout * 2,
		IdleTimeout:  120 * time.Second,
	}
}

type requestIDKey struct{}

// requestIDMiddleware assigns a request id (from the header if
// present, else a fresh one) and echoes it back on the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs method, path, status, and duration for every
// request, tagged with its request id.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		requestID, _ := r.Context().Value(requestIDKey{}).(string)
		rlog.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

// corsMiddleware allows the editing UI to call the API from a
// different origin.
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(origins) > 0 {
			origin = origins[0]
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
