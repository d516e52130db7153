package http

import (
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/availability"
)

type AvailabilityResponse struct {
	Date          string   `json:"date"`
	Slots         []string `json:"slots"`
	OccupiedSlots []string `json:"occupied_slots"`
	ElapsedSlots  []string `json:"elapsed_slots"`
	Degraded      bool     `json:"degraded"`
}

func NewAvailabilityResponse(a *availability.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		Date:          a.Date.Format(time.DateOnly),
		Slots:         nonNil(a.Available),
		OccupiedSlots: nonNil(a.Occupied),
		ElapsedSlots:  nonNil(a.Elapsed),
		Degraded:      a.Degraded,
	}
}

// StreamFrame is one websocket message: either a fresh availability or an error.
type StreamFrame struct {
	Type         string                `json:"type"`
	Availability *AvailabilityResponse `json:"availability,omitempty"`
	Error        string                `json:"error,omitempty"`
}

const (
	FrameAvailability = "availability"
	FrameError        = "error"
)

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
