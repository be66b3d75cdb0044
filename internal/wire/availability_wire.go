package wire

import (
	"service-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/availability", func(r chi.Router) {
		// GET /api/availability/dates?domain= - bookable dates
		r.Get("/dates", availabilityHandler.GetDates)

		// GET /api/availability/times?date=&domain= - open slots on a date
		r.Get("/times", availabilityHandler.GetTimes)
	})
}
