package delivery_http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"gallery-service/internal/logger"
	"gallery-service/internal/metrics"
)

func RequestLogger(log *logger.Logger, metricsProvider metrics.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chi_middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			metricsProvider.IncrementHTTPRequests(r.Method, r.URL.Path, strconv.Itoa(ww.Status()))
			metricsProvider.RecordHTTPRequestDuration(r.Method, r.URL.Path, duration)

			log.Info("HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", duration))
		})
	}
}
