package adaptor

import (
	"encoding/json"
	"net/http"

	"service-booking/internal/dto/request"
	"service-booking/internal/usecase"
	"service-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	var req request.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add cart item")
		return
	}

	utils.ResponseCreated(w, "success", item)
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "remove cart item")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "clear cart")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// SetDirectBooking handles POST /api/direct-booking
func (h *CartHandler) SetDirectBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	var req request.DirectBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	direct, err := h.service.SetDirectBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set direct booking")
		return
	}

	utils.ResponseCreated(w, "success", direct)
}

// GetDirectBooking handles GET /api/direct-booking
func (h *CartHandler) GetDirectBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	direct, err := h.service.GetDirectBooking(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get direct booking")
		return
	}

	utils.ResponseSuccess(w, "success", direct)
}

// ClearDirectBooking handles DELETE /api/direct-booking
func (h *CartHandler) ClearDirectBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearDirectBooking(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "clear direct booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
