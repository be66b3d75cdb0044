package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrSubmitInProgress = errors.New("a booking submission is already in progress")
)

// ValidationError is a user input problem detected before any backend call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Messages shown to the customer.
const (
	msgSelectAddress     = "Please select a service address"
	msgAddressNotFound   = "The selected address could not be found"
	msgSelectDate        = "Please select a booking date"
	msgSelectTime        = "Please select a booking time"
	msgSlotUnavailable   = "The selected time slot is no longer available, please pick another time"
	msgSelectPayment     = "Please select a payment method"
	msgEmptyItems        = "Your cart is empty"
	msgInvalidItems      = "Some items in your cart are invalid"
	msgAddonUnavailable  = "A selected add-on is no longer available"
	msgBookingFailed     = "We could not complete your booking, please try again"
	msgServiceDown       = "Something went wrong while booking, please try again in a moment"
	msgBookingConfirmed  = "Your booking is confirmed"
	msgRedirecting       = "Redirecting to the payment gateway"
	msgAddonPrompt       = "Add any extras before confirming your booking"
	msgResumeConfirmed   = "Payment received, your booking is confirmed"
	msgResumeFailed      = "Payment was not completed, please try booking again"
	msgResumeUnconfirmed = "We couldn't confirm your booking. Please check your orders before trying again"
)
