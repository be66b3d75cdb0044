package usecase

import (
	"service-booking/internal/availability"
	"service-booking/internal/backend"
	"service-booking/internal/data/entity"
	"service-booking/internal/pricing"
	"service-booking/pkg/utils"
)

// DomainProfile is the configuration that differs between booking products.
// The slot engine and the orchestrator are shared.
type DomainProfile struct {
	Domain         entity.BookingDomain
	Window         availability.Window
	HorizonDays    int
	OnlineEndpoint string
	SupportsAddons bool
	Policy         pricing.PayablePolicy
}

type Profiles map[entity.BookingDomain]DomainProfile

func NewProfiles(config utils.BookingConfig) Profiles {
	window := availability.Window{
		StartHour:   config.ServiceStartHour,
		EndHour:     config.ServiceEndHour,
		BufferHours: config.BufferHours,
		SlotHours:   config.SlotHours,
	}

	return Profiles{
		entity.DomainHomeServices: {
			Domain:         entity.DomainHomeServices,
			Window:         window,
			HorizonDays:    config.HorizonDays,
			OnlineEndpoint: backend.PathInitiatePayment,
			Policy:         pricing.AdvancePolicy{Percent: config.AdvancePercent},
		},
		entity.DomainApplianceRepairs: {
			Domain:         entity.DomainApplianceRepairs,
			Window:         window,
			HorizonDays:    config.HorizonDays,
			OnlineEndpoint: backend.PathApplianceInitiatePayment,
			Policy:         pricing.BookingCostPolicy{},
		},
		entity.DomainProfessionalServices: {
			Domain:         entity.DomainProfessionalServices,
			Window:         window,
			HorizonDays:    config.HorizonDays,
			OnlineEndpoint: backend.PathInitiatePayment,
			SupportsAddons: true,
			Policy:         pricing.BookingCostPolicy{},
		},
	}
}

func (p Profiles) lookup(raw string) (DomainProfile, error) {
	domain, err := entity.ParseBookingDomain(raw)
	if err != nil {
		return DomainProfile{}, invalid("domain", err.Error())
	}
	profile, ok := p[domain]
	if !ok {
		return DomainProfile{}, invalid("domain", "unsupported booking domain")
	}
	return profile, nil
}
