package entity

import "fmt"

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentWallet PaymentMethod = "WALLET"
	PaymentOnline PaymentMethod = "ONLINE"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCOD, PaymentWallet, PaymentOnline:
		return m, nil
	default:
		return "", fmt.Errorf("invalid payment method %q", s)
	}
}

// PaymentOption selects how much of a cart total is collected online now.
type PaymentOption string

const (
	PaymentOptionFull    PaymentOption = "full"
	PaymentOptionAdvance PaymentOption = "advance"
)
