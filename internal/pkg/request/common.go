package request

import (
	"strings"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

// DateLayout is the calendar-date format accepted in query strings.
const DateLayout = "2006-01-02"

var ErrInvalidDate = apperror.Validation("date must be formatted as YYYY-MM-DD")

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// ListParams holds the paging and ordering parameters shared by list endpoints.
type ListParams struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Normalize fills in defaults for unset paging fields.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	p.SortOrder = strings.ToUpper(p.SortOrder)
}

// DateQuery binds a required ?date=YYYY-MM-DD parameter.
type DateQuery struct {
	Date string `form:"date" binding:"required"`
}

// Parse returns the date as UTC midnight.
func (q *DateQuery) Parse() (time.Time, error) {
	d, err := time.Parse(DateLayout, q.Date)
	if err != nil {
		return time.Time{}, apperror.WithCause(ErrInvalidDate, err)
	}
	return d.UTC(), nil
}
