package client

import (
	"net/http"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("client not found")
	ErrEmailAlreadyUsed = apperror.Conflict("email already used")
	ErrIDAlreadyUsed    = apperror.Conflict("client already exists")
	ErrNameRequired     = apperror.Validation("full name is required")
	ErrIDRequired       = apperror.Validation("client id is required")
	ErrUnavailable      = apperror.New(http.StatusServiceUnavailable, "client store unavailable")
)

// Client is the studio's record of a person who books.
// ID is the subject the identity provider puts in the access token.
type Client struct {
	ID        string
	FullName  string
	Email     *string
	Phone     *string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines filter options for listing clients.
type Filter struct {
	Keyword string // matches full name, email or phone

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
