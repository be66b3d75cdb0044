// Package pricing turns a list of line items into the amounts shown at checkout.
package pricing

import (
	"fmt"

	"service-booking/internal/data/entity"
)

// Breakdown holds amounts in integer minor units. Which fields are filled
// depends on the source mode: direct lists are priced by their booking and
// inspection costs, carts by unit price, quantity, platform fee and tax.
type Breakdown struct {
	Mode           entity.SourceMode `json:"mode"`
	ServiceCost    int64             `json:"serviceCost"`
	BookingCost    int64             `json:"bookingCost"`
	InspectionCost int64             `json:"inspectionCost"`
	PlatformFee    int64             `json:"platformFee"`
	Tax            int64             `json:"tax"`
	Total          int64             `json:"total"`
	PayableNow     int64             `json:"payableNow"`
	PayableOnSite  int64             `json:"payableOnSite"`
}

// Charges are the cart-mode additions on top of the service cost.
type Charges struct {
	PlatformFee    int64
	TaxBasisPoints int64
}

type Calculator struct {
	charges Charges
}

func NewCalculator(charges Charges) *Calculator {
	return &Calculator{charges: charges}
}

// Compute prices items for the given mode. The mode is never inferred from the
// items. PayableNow is left for a PayablePolicy to fill.
func (c *Calculator) Compute(items []entity.LineItem, mode entity.SourceMode) (Breakdown, error) {
	for _, it := range items {
		if it.UnitPrice < 0 || it.BookingCost < 0 || it.InspectionCost < 0 {
			return Breakdown{}, fmt.Errorf("invalid negative amount on item %s", it.ID)
		}
		if it.Quantity < 1 {
			return Breakdown{}, fmt.Errorf("invalid quantity %d on item %s", it.Quantity, it.ID)
		}
	}

	b := Breakdown{Mode: mode}

	switch mode {
	case entity.SourceDirect:
		for _, it := range items {
			b.BookingCost += it.BookingCost
			b.InspectionCost += it.InspectionCost
		}
		// inspection is disclosed as payable on site, never collected online
		b.Total = b.BookingCost
		b.PayableOnSite = b.InspectionCost

	case entity.SourceCart:
		for _, it := range items {
			b.ServiceCost += it.UnitPrice * int64(it.Quantity)
		}
		if len(items) > 0 {
			b.PlatformFee = c.charges.PlatformFee
		}
		b.Tax = basisPoints(b.ServiceCost, c.charges.TaxBasisPoints)
		b.Total = b.ServiceCost + b.PlatformFee + b.Tax

	default:
		return Breakdown{}, fmt.Errorf("invalid source mode %q", mode)
	}

	return b, nil
}

// basisPoints returns amount*bp/10000 rounded half up.
func basisPoints(amount, bp int64) int64 {
	return (amount*bp + 5000) / 10000
}
