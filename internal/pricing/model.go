package pricing

import (
	"net/http"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidSelection  = apperror.Validation("size, style or placement does not match the pricing rules")
	ErrInvalidComplexity = apperror.Validation("complexity must be between 0 and 100")
	ErrInvalidOfferID    = apperror.Validation("special offer not found")
	ErrInvalidRules      = apperror.Validation("invalid pricing rules")
	ErrRulesNotFound     = apperror.NotFound("pricing rules not found")
	ErrRulesUnavailable  = apperror.New(http.StatusServiceUnavailable, "pricing rules unavailable")
)

const (
	MinComplexity     = 0
	MaxComplexity     = 100
	NeutralComplexity = 50
)

// Size is a tattoo size tier with its base price in whole currency units.
type Size struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	BasePrice int    `json:"basePrice" validate:"gt=0"`
}

// Style scales the base price by Multiplier.
type Style struct {
	ID         string  `json:"id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Multiplier float64 `json:"multiplier" validate:"gt=0"`
}

// Placement scales the base price by Multiplier.
type Placement struct {
	ID         string  `json:"id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Multiplier float64 `json:"multiplier" validate:"gt=0"`
}

// SpecialOffer is a percentage discount that only applies while Active.
type SpecialOffer struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Discount int    `json:"discount" validate:"min=0,max=100"`
	Active   bool   `json:"active"`
}

// RuleSet is the admin-configured pricing table. Names are the join keys used to resolve
// a customer's selection.
type RuleSet struct {
	Sizes             []Size         `json:"sizes" validate:"min=1,dive"`
	Styles            []Style        `json:"styles" validate:"min=1,dive"`
	Placements        []Placement    `json:"placements" validate:"min=1,dive"`
	SpecialOffers     []SpecialOffer `json:"specialOffers" validate:"dive"`
	DepositRequired   bool           `json:"depositRequired"`
	DepositPercentage int            `json:"depositPercentage" validate:"min=0,max=100"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// Clone returns a deep copy so callers can't mutate a cached rule set.
func (r *RuleSet) Clone() *RuleSet {
	if r == nil {
		return nil
	}
	out := *r
	out.Sizes = append([]Size(nil), r.Sizes...)
	out.Styles = append([]Style(nil), r.Styles...)
	out.Placements = append([]Placement(nil), r.Placements...)
	out.SpecialOffers = append([]SpecialOffer(nil), r.SpecialOffers...)
	return &out
}

func (r *RuleSet) size(name string) (Size, bool) {
	for _, s := range r.Sizes {
		if s.Name == name {
			return s, true
		}
	}
	return Size{}, false
}

func (r *RuleSet) style(name string) (Style, bool) {
	for _, s := range r.Styles {
		if s.Name == name {
			return s, true
		}
	}
	return Style{}, false
}

func (r *RuleSet) placement(name string) (Placement, bool) {
	for _, p := range r.Placements {
		if p.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}

// Offer looks up a special offer by id.
func (r *RuleSet) Offer(id string) (SpecialOffer, bool) {
	for _, o := range r.SpecialOffers {
		if o.ID == id {
			return o, true
		}
	}
	return SpecialOffer{}, false
}
