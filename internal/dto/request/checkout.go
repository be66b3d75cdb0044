package request

type CheckoutRequest struct {
	Domain        string         `json:"domain" validate:"omitempty,oneof=home-services appliance-repairs professional-services"`
	AddressID     string         `json:"address_id" validate:"omitempty,uuid"`
	BookedDate    string         `json:"booked_date" validate:"omitempty,datetime=2006-01-02"`
	BookedTime    string         `json:"booked_time" validate:"omitempty,datetime=15:04"`
	PaymentMethod string         `json:"payment_method" validate:"omitempty,oneof=COD WALLET ONLINE"`
	PaymentOption string         `json:"payment_option" validate:"omitempty,oneof=full advance"`
	Note          string         `json:"note" validate:"max=500"`
	ProviderID    string         `json:"provider_id" validate:"max=64"`
	Addons        *AddonDecision `json:"addons,omitempty"`
}

// AddonDecision answers an add-on prompt. A nil decision means the user has
// not seen the eligible add-ons yet.
type AddonDecision struct {
	Skip        bool     `json:"skip"`
	SelectedIDs []string `json:"selected_ids" validate:"max=20"`
}

type ResumeRequest struct {
	Status string `json:"status" validate:"required,oneof=success failure"`
	Ref    string `json:"ref"`
}
