package booking

import (
	"net/http"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.NotFound("booking not found")
	ErrSlotTaken         = apperror.Conflict("time slot already booked")
	ErrInvalidStatus     = apperror.Validation("invalid booking status")
	ErrInvalidTransition = apperror.Validation("booking status transition not allowed")
	ErrInvalidDesign     = apperror.Validation("size, style and placement are required")
	ErrInvalidPrice      = apperror.Validation("price must be positive")
	ErrInvalidInput      = apperror.Validation("invalid input parameters")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrUnavailable       = apperror.New(http.StatusServiceUnavailable, "booking storage unavailable")
)

// SlotLayout formats a booking time as its slot label.
const SlotLayout = "15:04"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from s to next.
// pending → confirmed → completed; pending and confirmed may be cancelled.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// DesignDetails is the customer's design selection, persisted as JSONB.
type DesignDetails struct {
	Size       string `json:"size"`
	Style      string `json:"style"`
	Placement  string `json:"placement"`
	Complexity int    `json:"complexity"`
}

// Booking is one appointment. Price, Deposit, DiscountedPrice and OfferID are a snapshot
// taken at creation and are only changed by an explicit price update.
type Booking struct {
	ID              string
	ClientID        string
	DateTime        time.Time
	Status          Status
	Design          DesignDetails
	Price           int
	Deposit         *int
	DiscountedPrice *int
	OfferID         *string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SlotLabel is the zero-padded HH:mm of the booking's start in UTC.
func (b *Booking) SlotLabel() string {
	return SlotLabel(b.DateTime)
}

func SlotLabel(t time.Time) string {
	return t.UTC().Format(SlotLayout)
}

// DayBounds returns the inclusive UTC range [00:00:00.000, 23:59:59.999] of t's date.
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Millisecond)
}

type Filter struct {
	ClientID  string
	Status    string
	StartTime *time.Time // Filter bookings starting at or after this time
	EndTime   *time.Time // Filter bookings starting at or before this time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
