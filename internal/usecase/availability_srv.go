package usecase

import (
	"context"

	"service-booking/internal/availability"
	"service-booking/internal/dto/response"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	GetDates(ctx context.Context, domain string) (*response.AvailableDatesResponse, error)
	GetTimes(ctx context.Context, domain, date string) (*response.AvailableTimesResponse, error)
}

type availabilityService struct {
	profiles Profiles
	clock    Clock
	log      *zap.Logger
}

func NewAvailabilityService(profiles Profiles, clock Clock, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		profiles: profiles,
		clock:    clock,
		log:      log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetDates(ctx context.Context, domain string) (*response.AvailableDatesResponse, error) {
	profile, err := s.profiles.lookup(domain)
	if err != nil {
		return nil, err
	}

	dates := availability.AvailableDates(s.clock(), profile.Window, profile.HorizonDays)
	return response.DatesToResponse(profile.Domain, dates), nil
}

func (s *availabilityService) GetTimes(ctx context.Context, domain, date string) (*response.AvailableTimesResponse, error) {
	profile, err := s.profiles.lookup(domain)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	day, err := availability.ParseDate(date, now.Location())
	if err != nil {
		return nil, invalid("date", "date must be formatted as YYYY-MM-DD")
	}

	slots := availability.AvailableTimes(day, now, profile.Window)
	if len(slots) == 0 {
		s.log.Debug("No slots left", zap.String("domain", string(profile.Domain)), zap.String("date", date))
	}

	return response.SlotsToResponse(profile.Domain, date, slots), nil
}
