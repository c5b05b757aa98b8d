package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SelectionReader reports the facility remembered on this machine.
type SelectionReader interface {
	Remembered(ctx context.Context) (string, bool, error)
}

// Server exposes health, readiness, metrics and the remembered selection
// while the picker is running.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// /selection routes. Readiness follows the location hierarchy load.
func NewServer(addr string, ready sharedobs.ReadinessChecker, selection SelectionReader, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /selection", s.handleSelection(selection))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleSelection(reader SelectionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok, err := reader.Remembered(r.Context())
		switch {
		case err != nil:
			s.logger.Warn("selection status failed", "error", err)
			sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		case !ok:
			sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"status": "no facility selected"})
		default:
			sharedobs.WriteJSON(w, http.StatusOK, map[string]string{"facilityId": id})
		}
	}
}
