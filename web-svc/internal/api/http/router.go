package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"eatery-frontend/web-svc/internal/auth"
	"eatery-frontend/web-svc/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func NewRouter(handler *Handler, m *metrics.Metrics, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	if m != nil {
		r.Use(m.Middleware)
		r.Handle("/metrics", m.Handler()).Methods("GET")
	}
	r.Use(auth.Middleware)
	handler.RegisterRoutes(r)

	if len(allowedOrigins) == 0 {
		return cors.Default().Handler(r)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)
}

// StartServer serves until ctx is cancelled, then drains in-flight requests.
func StartServer(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web service starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("web service shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
