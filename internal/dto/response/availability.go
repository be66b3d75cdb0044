package response

import (
	"service-booking/internal/availability"
	"service-booking/internal/data/entity"
)

type DateOptionResponse struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

type AvailableDatesResponse struct {
	Domain entity.BookingDomain `json:"domain"`
	Dates  []DateOptionResponse `json:"dates"`
}

type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type AvailableTimesResponse struct {
	Domain entity.BookingDomain `json:"domain"`
	Date   string               `json:"date"`
	Slots  []SlotResponse       `json:"slots"`
}

func DatesToResponse(domain entity.BookingDomain, dates []availability.DateOption) *AvailableDatesResponse {
	out := make([]DateOptionResponse, len(dates))
	for i, d := range dates {
		out[i] = DateOptionResponse{Date: d.Value, Label: d.Label}
	}
	return &AvailableDatesResponse{Domain: domain, Dates: out}
}

func SlotsToResponse(domain entity.BookingDomain, date string, slots []availability.Slot) *AvailableTimesResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{Start: s.Start, End: s.End, Label: s.Label}
	}
	return &AvailableTimesResponse{Domain: domain, Date: date, Slots: out}
}
