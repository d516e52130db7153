package http

import (
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/pricing"
)

type SizeBody struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	BasePrice int    `json:"base_price" binding:"gt=0"`
}

type MultiplierBody struct {
	ID         string  `json:"id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Multiplier float64 `json:"multiplier" binding:"gt=0"`
}

type OfferBody struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Discount int    `json:"discount" binding:"min=0,max=100"`
	Active   bool   `json:"active"`
}

// RulesBody is both the request body of PUT /pricing/rules and the response of GET.
type RulesBody struct {
	Sizes             []SizeBody       `json:"sizes" binding:"required,min=1,dive"`
	Styles            []MultiplierBody `json:"styles" binding:"required,min=1,dive"`
	Placements        []MultiplierBody `json:"placements" binding:"required,min=1,dive"`
	SpecialOffers     []OfferBody      `json:"special_offers" binding:"dive"`
	DepositRequired   bool             `json:"deposit_required"`
	DepositPercentage int              `json:"deposit_percentage" binding:"min=0,max=100"`
	UpdatedAt         *time.Time       `json:"updated_at,omitempty"`
}

func NewRulesBody(r *pricing.RuleSet) RulesBody {
	body := RulesBody{
		Sizes:             make([]SizeBody, len(r.Sizes)),
		Styles:            make([]MultiplierBody, len(r.Styles)),
		Placements:        make([]MultiplierBody, len(r.Placements)),
		SpecialOffers:     make([]OfferBody, len(r.SpecialOffers)),
		DepositRequired:   r.DepositRequired,
		DepositPercentage: r.DepositPercentage,
	}
	for i, s := range r.Sizes {
		body.Sizes[i] = SizeBody{ID: s.ID, Name: s.Name, BasePrice: s.BasePrice}
	}
	for i, s := range r.Styles {
		body.Styles[i] = MultiplierBody{ID: s.ID, Name: s.Name, Multiplier: s.Multiplier}
	}
	for i, p := range r.Placements {
		body.Placements[i] = MultiplierBody{ID: p.ID, Name: p.Name, Multiplier: p.Multiplier}
	}
	for i, o := range r.SpecialOffers {
		body.SpecialOffers[i] = OfferBody{ID: o.ID, Name: o.Name, Discount: o.Discount, Active: o.Active}
	}
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		body.UpdatedAt = &t
	}
	return body
}

// ToRuleSet converts the request body into the domain type.
func (b *RulesBody) ToRuleSet() *pricing.RuleSet {
	r := &pricing.RuleSet{
		Sizes:             make([]pricing.Size, len(b.Sizes)),
		Styles:            make([]pricing.Style, len(b.Styles)),
		Placements:        make([]pricing.Placement, len(b.Placements)),
		SpecialOffers:     make([]pricing.SpecialOffer, len(b.SpecialOffers)),
		DepositRequired:   b.DepositRequired,
		DepositPercentage: b.DepositPercentage,
	}
	for i, s := range b.Sizes {
		r.Sizes[i] = pricing.Size{ID: s.ID, Name: s.Name, BasePrice: s.BasePrice}
	}
	for i, s := range b.Styles {
		r.Styles[i] = pricing.Style{ID: s.ID, Name: s.Name, Multiplier: s.Multiplier}
	}
	for i, p := range b.Placements {
		r.Placements[i] = pricing.Placement{ID: p.ID, Name: p.Name, Multiplier: p.Multiplier}
	}
	for i, o := range b.SpecialOffers {
		r.SpecialOffers[i] = pricing.SpecialOffer{ID: o.ID, Name: o.Name, Discount: o.Discount, Active: o.Active}
	}
	return r
}

type QuoteRequest struct {
	Size       string `json:"size" binding:"required"`
	Style      string `json:"style" binding:"required"`
	Placement  string `json:"placement" binding:"required"`
	Complexity *int   `json:"complexity"`
	OfferID    string `json:"offer_id"`
}

// ToDomain applies the neutral complexity when the client leaves it out.
func (r *QuoteRequest) ToDomain() pricing.QuoteRequest {
	complexity := pricing.NeutralComplexity
	if r.Complexity != nil {
		complexity = *r.Complexity
	}
	return pricing.QuoteRequest{
		Size:       r.Size,
		Style:      r.Style,
		Placement:  r.Placement,
		Complexity: complexity,
		OfferID:    r.OfferID,
	}
}

type QuoteResponse struct {
	Price           int    `json:"price"`
	Deposit         *int   `json:"deposit"`
	DiscountedPrice *int   `json:"discounted_price"`
	OfferID         string `json:"offer_id,omitempty"`
	Total           int    `json:"total"`
}

func NewQuoteResponse(q *pricing.Quote) QuoteResponse {
	return QuoteResponse{
		Price:           q.Price,
		Deposit:         q.Deposit,
		DiscountedPrice: q.DiscountedPrice,
		OfferID:         q.OfferID,
		Total:           q.FinalPrice(),
	}
}
