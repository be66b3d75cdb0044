package entity

// SourceMode tags where the items of a checkout came from. The two modes give
// overlapping field names different meanings, so callers always pass it explicitly.
type SourceMode string

const (
	SourceCart   SourceMode = "cart"
	SourceDirect SourceMode = "direct"
)

// LineItem is one bookable unit: a service, a package or an add-on.
// Money fields are integer minor units.
type LineItem struct {
	ID             string `json:"id"`
	ServiceID      string `json:"serviceId"`
	ServiceName    string `json:"serviceName"`
	PackageName    string `json:"packageName"`
	UnitPrice      int64  `json:"unitPrice"`
	Quantity       int    `json:"quantity"`
	BookingCost    int64  `json:"bookingCost"`
	InspectionCost int64  `json:"inspectionCost"`
	IsAddon        bool   `json:"isAddon,omitempty"`
}
