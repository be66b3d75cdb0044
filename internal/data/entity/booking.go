package entity

import "fmt"

// BookingDomain selects the per-product configuration of a checkout.
type BookingDomain string

const (
	DomainHomeServices         BookingDomain = "home-services"
	DomainApplianceRepairs     BookingDomain = "appliance-repairs"
	DomainProfessionalServices BookingDomain = "professional-services"
)

func ParseBookingDomain(s string) (BookingDomain, error) {
	if s == "" {
		return DomainHomeServices, nil
	}
	switch d := BookingDomain(s); d {
	case DomainHomeServices, DomainApplianceRepairs, DomainProfessionalServices:
		return d, nil
	default:
		return "", fmt.Errorf("invalid booking domain %q", s)
	}
}

// BookingRequest is the body sent to the booking and payment-initiation endpoints.
type BookingRequest struct {
	ServiceAddressID string        `json:"serviceAddressId"`
	BookedDate       string        `json:"bookedDate"`
	BookedTime       string        `json:"bookedTime"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	PaymentOption    PaymentOption `json:"paymentOption,omitempty"`
	SourceOfLead     string        `json:"sourceOfLead"`
	PreferenceNote   string        `json:"preferenceNote,omitempty"`
	OrderID          string        `json:"orderId"`
	Items            []LineItem    `json:"items"`
	Amount           int64         `json:"amount"`

	// ONLINE only
	SuccessURL string `json:"surl,omitempty"`
	FailureURL string `json:"furl,omitempty"`
}
