package entity

import (
	"github.com/google/uuid"
)

// CartItem is a LineItem persisted in a user's standing cart.
type CartItem struct {
	BaseSimple
	UserID         uuid.UUID `db:"user_id"`
	ServiceID      string    `db:"service_id"`
	ServiceName    string    `db:"service_name"`
	PackageName    string    `db:"package_name"`
	UnitPrice      int64     `db:"unit_price"`
	Quantity       int       `db:"quantity"`
	BookingCost    int64     `db:"booking_cost"`
	InspectionCost int64     `db:"inspection_cost"`
}

func (c *CartItem) LineItem() LineItem {
	return LineItem{
		ID:             c.ID.String(),
		ServiceID:      c.ServiceID,
		ServiceName:    c.ServiceName,
		PackageName:    c.PackageName,
		UnitPrice:      c.UnitPrice,
		Quantity:       c.Quantity,
		BookingCost:    c.BookingCost,
		InspectionCost: c.InspectionCost,
	}
}
