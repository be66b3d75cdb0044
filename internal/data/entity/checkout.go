package entity

// CheckoutState is a state of the checkout orchestrator.
type CheckoutState string

const (
	CheckoutCollecting      CheckoutState = "collecting"
	CheckoutValidating      CheckoutState = "validating"
	CheckoutAddonCheck      CheckoutState = "addon_check"
	CheckoutSubmitting      CheckoutState = "submitting"
	CheckoutGatewayRedirect CheckoutState = "gateway_redirect"
	CheckoutConfirmed       CheckoutState = "confirmed"
	CheckoutResuming        CheckoutState = "resuming"
	CheckoutSuccess         CheckoutState = "success"
	CheckoutFailure         CheckoutState = "failure"
)

// FailureKind classifies why a checkout went back to collecting.
type FailureKind string

const (
	FailureValidation  FailureKind = "validation"
	FailureRejected    FailureKind = "rejected"
	FailureUnavailable FailureKind = "unavailable"
)

// ResumeReason explains a failed resumption after the gateway.
type ResumeReason string

const (
	ResumePaymentFailed ResumeReason = "payment_failed"
	ResumeUnconfirmed   ResumeReason = "unconfirmed"
)
