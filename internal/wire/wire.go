package wire

import (
	"context"
	"net/http"
	"time"

	"service-booking/internal/adaptor"
	"service-booking/internal/data/repository"
	"service-booking/internal/usecase"
	"service-booking/pkg/middleware"
	"service-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// HealthCheck is a dependency probed by /ready.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, backend usecase.BookingBackend, config *utils.Config, logger *zap.Logger, checks ...HealthCheck) *App {
	service := usecase.NewService(repo, backend, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger, checks)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	checks []HealthCheck,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.BaseURL))

	wireAvailability(r, handler.Availability)
	wireCart(r, handler.Cart, repo, logger)
	wireCheckout(r, handler.Checkout, repo, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		failed := map[string]string{}
		for _, c := range checks {
			if err := c.Ping(ctx); err != nil {
				logger.Warn("Readiness check failed", zap.String("dependency", c.Name), zap.Error(err))
				failed[c.Name] = err.Error()
			}
		}
		if len(failed) > 0 {
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Not ready", nil, failed)
			return
		}
		utils.ResponseSuccess(w, "ready", nil)
	})

	return r
}
