package http

import (
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	ClientID      string     `form:"client_id"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=date_time created_at status price"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return booking.ErrInvalidInput
		}
	}
	return nil
}

type DesignBody struct {
	Size       string `json:"size" binding:"required"`
	Style      string `json:"style" binding:"required"`
	Placement  string `json:"placement" binding:"required"`
	Complexity *int   `json:"complexity"`
}

type BookingResponse struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	DateTime        time.Time  `json:"date_time"`
	Slot            string     `json:"slot"`
	Status          string     `json:"status"`
	Design          DesignBody `json:"design_details"`
	Price           int        `json:"price"`
	Deposit         *int       `json:"deposit"`
	DiscountedPrice *int       `json:"discounted_price"`
	OfferID         *string    `json:"offer_id"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	complexity := b.Design.Complexity
	return BookingResponse{
		ID:       b.ID,
		ClientID: b.ClientID,
		DateTime: b.DateTime,
		Slot:     b.SlotLabel(),
		Status:   string(b.Status),
		Design: DesignBody{
			Size:       b.Design.Size,
			Style:      b.Design.Style,
			Placement:  b.Design.Placement,
			Complexity: &complexity,
		},
		Price:           b.Price,
		Deposit:         b.Deposit,
		DiscountedPrice: b.DiscountedPrice,
		OfferID:         b.OfferID,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	DateTime time.Time  `json:"date_time" binding:"required"`
	Design   DesignBody `json:"design_details" binding:"required"`
	OfferID  string     `json:"offer_id"`
	Notes    string     `json:"notes" binding:"max=2000"`
	// ClientID lets an admin book on behalf of a client.
	ClientID string `json:"client_id"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if r.DateTime.Before(time.Now()) {
		return booking.ErrInvalidInput
	}
	return nil
}

type UpdateBookingRequest struct {
	Status  *string `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
	Price   *int    `json:"price" binding:"omitempty,gt=0"`
	Deposit *int    `json:"deposit" binding:"omitempty,min=0"`
}
