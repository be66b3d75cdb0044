package wire

import (
	"service-booking/internal/adaptor"
	"service-booking/internal/data/repository"
	"service-booking/pkg/middleware"
	"service-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/checkout", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RateLimit(config.RateLimit, log))

		// GET /api/checkout/summary - items, source mode and amounts
		r.Get("/summary", checkoutHandler.Summary)

		// GET /api/checkout/addresses - service addresses to pick from
		r.Get("/addresses", checkoutHandler.Addresses)

		// POST /api/checkout - submit the selection
		r.Post("/", checkoutHandler.Submit)

		// GET /api/checkout/resume?status=&ref= - return from the payment gateway
		r.Get("/resume", checkoutHandler.Resume)
	})
}
