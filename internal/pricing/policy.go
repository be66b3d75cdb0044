package pricing

import "service-booking/internal/data/entity"

// PayablePolicy decides how much of a breakdown is collected online now.
// Products disagree on this, so each booking domain picks its own.
type PayablePolicy interface {
	Name() string
	Apply(b Breakdown, option entity.PaymentOption) Breakdown
}

// BookingCostPolicy collects the booking cost of a direct list, or the full
// cart total.
type BookingCostPolicy struct{}

func (BookingCostPolicy) Name() string { return "booking-cost" }

func (BookingCostPolicy) Apply(b Breakdown, _ entity.PaymentOption) Breakdown {
	b.PayableNow = b.Total
	if b.Mode == entity.SourceCart {
		b.PayableOnSite = 0
	}
	return b
}

// AdvancePolicy lets a cart be paid either in full or as a percentage advance,
// the remainder being collected on site. Direct lists behave as BookingCostPolicy.
type AdvancePolicy struct {
	Percent int64
}

func (p AdvancePolicy) Name() string { return "advance" }

func (p AdvancePolicy) Apply(b Breakdown, option entity.PaymentOption) Breakdown {
	if b.Mode != entity.SourceCart || option != entity.PaymentOptionAdvance {
		return BookingCostPolicy{}.Apply(b, option)
	}

	b.PayableNow = (b.Total*p.Percent + 50) / 100
	b.PayableOnSite = b.Total - b.PayableNow
	return b
}
