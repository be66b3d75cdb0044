package response

import (
	"encoding/json"

	"service-booking/internal/data/entity"
	"service-booking/internal/dto/request"
	"service-booking/internal/pricing"
)

type CheckoutSummaryResponse struct {
	Domain    entity.BookingDomain `json:"domain"`
	Mode      entity.SourceMode    `json:"mode"`
	Items     []entity.LineItem    `json:"items"`
	Breakdown pricing.Breakdown    `json:"breakdown"`
}

// CheckoutResponse is where a submit left the orchestrator. Selection echoes
// the user's choices so a failed attempt can be retried without re-entering them.
type CheckoutResponse struct {
	State       entity.CheckoutState    `json:"state"`
	Failure     entity.FailureKind      `json:"failure,omitempty"`
	Field       string                  `json:"field,omitempty"`
	Message     string                  `json:"message,omitempty"`
	Domain      entity.BookingDomain    `json:"domain"`
	Mode        entity.SourceMode       `json:"mode,omitempty"`
	Items       []entity.LineItem       `json:"items,omitempty"`
	Breakdown   *pricing.Breakdown      `json:"breakdown,omitempty"`
	Addons      []entity.LineItem       `json:"addons,omitempty"`
	OrderID     string                  `json:"order_id,omitempty"`
	RedirectURL string                  `json:"redirect_url,omitempty"`
	Booking     json.RawMessage         `json:"booking,omitempty"`
	Selection   request.CheckoutRequest `json:"selection"`
}

type ResumeResponse struct {
	State   entity.CheckoutState   `json:"state"`
	Reason  entity.ResumeReason    `json:"reason,omitempty"`
	Message string                 `json:"message"`
	Booking *entity.PendingBooking `json:"booking,omitempty"`
}
