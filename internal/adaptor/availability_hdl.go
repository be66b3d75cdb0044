package adaptor

import (
	"net/http"

	"service-booking/internal/usecase"
	"service-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetDates handles GET /api/availability/dates?domain=
func (h *AvailabilityHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.GetDates(r.Context(), r.URL.Query().Get("domain"))
	if err != nil {
		handleServiceError(w, h.log, err, "get available dates")
		return
	}

	utils.ResponseSuccess(w, "success", dates)
}

// GetTimes handles GET /api/availability/times?date=&domain=
func (h *AvailabilityHandler) GetTimes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Query parameter date is required", nil)
		return
	}

	times, err := h.service.GetTimes(r.Context(), query.Get("domain"), date)
	if err != nil {
		handleServiceError(w, h.log, err, "get available times")
		return
	}

	utils.ResponseSuccess(w, "success", times)
}
