package response

import (
	"time"

	"service-booking/internal/data/entity"
	"service-booking/internal/pricing"
)

type CartItemResponse struct {
	ID             string    `json:"id"`
	ServiceID      string    `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	PackageName    string    `json:"package_name,omitempty"`
	UnitPrice      int64     `json:"unit_price"`
	Quantity       int       `json:"quantity"`
	BookingCost    int64     `json:"booking_cost"`
	InspectionCost int64     `json:"inspection_cost"`
	CreatedAt      time.Time `json:"created_at"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Breakdown pricing.Breakdown  `json:"breakdown"`
}

type DirectBookingResponse struct {
	Items     []entity.LineItem `json:"items"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

func CartItemToResponse(item *entity.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:             item.ID.String(),
		ServiceID:      item.ServiceID,
		ServiceName:    item.ServiceName,
		PackageName:    item.PackageName,
		UnitPrice:      item.UnitPrice,
		Quantity:       item.Quantity,
		BookingCost:    item.BookingCost,
		InspectionCost: item.InspectionCost,
		CreatedAt:      item.CreatedAt,
	}
}
