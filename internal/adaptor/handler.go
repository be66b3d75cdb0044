package adaptor

import (
	"errors"
	"net/http"

	"service-booking/internal/usecase"
	"service-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Availability *AvailabilityHandler
	Cart         *CartHandler
	Checkout     *CheckoutHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(service.Availability, log),
		Cart:         NewCartHandler(service.Cart, log),
		Checkout:     NewCheckoutHandler(service.Checkout, log),
	}
}

// handleServiceError maps service errors to responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, verr.Message, map[string]string{verr.Field: verr.Message})

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Not found")

	case errors.Is(err, usecase.ErrSubmitInProgress):
		log.Warn(operation+" failed - already in progress",
			zap.String("operation", operation))
		utils.ResponseConflict(w, "A booking is already being submitted")

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// owner returns the authenticated user, writing 401 when there is none
func owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return userID, ok
}
