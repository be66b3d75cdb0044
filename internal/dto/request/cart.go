package request

type AddCartItemRequest struct {
	ServiceID      string `json:"service_id" validate:"required,max=64"`
	ServiceName    string `json:"service_name" validate:"required,max=200"`
	PackageName    string `json:"package_name" validate:"max=200"`
	UnitPrice      int64  `json:"unit_price" validate:"gte=0"`
	Quantity       int    `json:"quantity" validate:"required,min=1,max=50"`
	BookingCost    int64  `json:"booking_cost" validate:"gte=0"`
	InspectionCost int64  `json:"inspection_cost" validate:"gte=0"`
}

type DirectBookingItem struct {
	ID             string `json:"id" validate:"max=64"`
	ServiceID      string `json:"service_id" validate:"required,max=64"`
	ServiceName    string `json:"service_name" validate:"required,max=200"`
	PackageName    string `json:"package_name" validate:"max=200"`
	UnitPrice      int64  `json:"unit_price" validate:"gte=0"`
	Quantity       int    `json:"quantity" validate:"omitempty,min=1,max=50"`
	BookingCost    int64  `json:"booking_cost" validate:"gte=0"`
	InspectionCost int64  `json:"inspection_cost" validate:"gte=0"`
}

type DirectBookingRequest struct {
	Items []DirectBookingItem `json:"items" validate:"required,min=1,max=20,dive"`
}
