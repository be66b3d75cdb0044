package wire

import (
	"service-booking/internal/adaptor"
	"service-booking/internal/data/repository"
	"service-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/api/cart", cartHandler.GetCart)
		r.Post("/api/cart/items", cartHandler.AddItem)
		r.Delete("/api/cart/items/{id}", cartHandler.RemoveItem)
		r.Delete("/api/cart", cartHandler.ClearCart)

		// Book Now selection, priced by booking and inspection cost
		r.Post("/api/direct-booking", cartHandler.SetDirectBooking)
		r.Get("/api/direct-booking", cartHandler.GetDirectBooking)
		r.Delete("/api/direct-booking", cartHandler.ClearDirectBooking)
	})
}
