package usecase

import (
	"time"

	"service-booking/internal/data/repository"
	"service-booking/pkg/utils"

	"go.uber.org/zap"
)

// Clock returns the current time in the client's timezone.
type Clock func() time.Time

type Service struct {
	Availability AvailabilityService
	Cart         CartService
	Checkout     CheckoutService
}

func NewService(repo *repository.Repository, backend BookingBackend, config *utils.Config, log *zap.Logger) *Service {
	loc := config.App.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	profiles := NewProfiles(config.Booking)

	return &Service{
		Availability: NewAvailabilityService(profiles, clock, log),
		Cart:         NewCartService(repo, config.Booking, log),
		Checkout:     NewCheckoutService(repo, backend, profiles, config, clock, log),
	}
}
