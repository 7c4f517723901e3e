package delivery_http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"

	post_http "gallery-service/internal/delivery/http/post"
	"gallery-service/internal/logger"
	"gallery-service/internal/metrics"
)

type Server struct {
	server  *http.Server
	handler http.Handler
	address string
	port    int
	log     *logger.Logger
}

func NewServer(handler http.Handler, address string, port int, log *logger.Logger) *Server {
	return &Server{
		handler: handler,
		address: address,
		port:    port,
		log:     log,
	}
}

func (s *Server) Run() error {
	address := fmt.Sprintf("%s:%d", s.address, s.port)
	s.server = &http.Server{
		Addr:              address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("Starting HTTP server", slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// NewRouter assembles the public API surface.
func NewRouter(api *post_http.PostHTTPService, log *logger.Logger, metricsProvider metrics.Provider) chi.Router {
	r := chi.NewRouter()
	r.Use(chi_middleware.Recoverer)
	r.Use(RequestLogger(log, metricsProvider))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	api.RegisterRoutes(r)
	return r
}
