package entity

// PendingBooking carries checkout context across the gateway redirect.
// Fields after OrderID were added later and must stay optional.
type PendingBooking struct {
	BookedDate string  `json:"bookedDate"`
	BookedTime string  `json:"bookedTime"`
	Address    Address `json:"address"`
	OrderID    string  `json:"orderId"`

	Source    SourceMode    `json:"source,omitempty"`
	Domain    BookingDomain `json:"domain,omitempty"`
	BookingID string        `json:"bookingId,omitempty"`
}
