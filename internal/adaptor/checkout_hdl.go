package adaptor

import (
	"encoding/json"
	"net/http"

	"service-booking/internal/data/entity"
	"service-booking/internal/dto/request"
	"service-booking/internal/usecase"
	"service-booking/pkg/utils"

	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Summary handles GET /api/checkout/summary?domain=&payment_option=
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	summary, err := h.service.Summary(r.Context(), userID, query.Get("domain"), query.Get("payment_option"))
	if err != nil {
		handleServiceError(w, h.log, err, "checkout summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// Addresses handles GET /api/checkout/addresses
func (h *CheckoutHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	addresses, err := h.service.Addresses(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list addresses")
		return
	}

	utils.ResponseSuccess(w, "success", addresses)
}

// Submit handles POST /api/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	token, _ := utils.GetTokenFromContext(r.Context())

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Submit(r.Context(), userID, token, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "submit checkout")
		return
	}

	switch resp.Failure {
	case entity.FailureValidation:
		utils.ResponseJSON(w, http.StatusBadRequest, false, resp.Message, resp, map[string]string{resp.Field: resp.Message})
	case entity.FailureRejected:
		utils.ResponseUnprocessable(w, resp.Message, resp)
	case entity.FailureUnavailable:
		utils.ResponseBadGateway(w, resp.Message, resp)
	default:
		utils.ResponseSuccess(w, resp.Message, resp)
	}
}

// Resume handles GET /api/checkout/resume?status=&ref=
func (h *CheckoutHandler) Resume(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := request.ResumeRequest{
		Status: query.Get("status"),
		Ref:    query.Get("ref"),
	}

	resp, err := h.service.Resume(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "resume checkout")
		return
	}

	// both outcomes are answers the page renders
	utils.ResponseJSON(w, http.StatusOK, resp.State == entity.CheckoutSuccess, resp.Message, resp, nil)
}
