package pricing

import (
	"fmt"
	"math"
)

// QuoteRequest is a customer's design selection.
type QuoteRequest struct {
	Size       string
	Style      string
	Placement  string
	Complexity int
	OfferID    string
}

// Quote is the full price breakdown for a selection. Deposit and DiscountedPrice are nil
// when the rule set does not require a deposit or no active offer applies.
type Quote struct {
	Price           int    `json:"price"`
	Deposit         *int   `json:"deposit"`
	DiscountedPrice *int   `json:"discountedPrice"`
	OfferID         string `json:"offerId,omitempty"`
}

// FinalPrice is the amount the customer pays in total.
func (q *Quote) FinalPrice() int {
	if q.DiscountedPrice != nil {
		return *q.DiscountedPrice
	}
	return q.Price
}

// CalculatePrice maps a selection onto the rule set:
// base × style × placement × (1 + (complexity-50)/100), rounded to the nearest 10.
func CalculatePrice(size, style, placement string, complexity int, rules *RuleSet) (int, error) {
	if rules == nil {
		return 0, ErrInvalidRules
	}
	if complexity < MinComplexity || complexity > MaxComplexity {
		return 0, ErrInvalidComplexity
	}

	sizeObj, ok := rules.size(size)
	if !ok {
		return 0, fmt.Errorf("size %q: %w", size, ErrInvalidSelection)
	}
	styleObj, ok := rules.style(style)
	if !ok {
		return 0, fmt.Errorf("style %q: %w", style, ErrInvalidSelection)
	}
	placementObj, ok := rules.placement(placement)
	if !ok {
		return 0, fmt.Errorf("placement %q: %w", placement, ErrInvalidSelection)
	}

	price := float64(sizeObj.BasePrice)
	price *= styleObj.Multiplier
	price *= placementObj.Multiplier
	price *= complexityFactor(complexity)

	return roundToTen(price), nil
}

// CalculateDeposit returns the up-front amount and whether the rule set requires one.
func CalculateDeposit(price int, rules *RuleSet) (int, bool) {
	if rules == nil || !rules.DepositRequired {
		return 0, false
	}
	return int(math.Round(float64(price) * float64(rules.DepositPercentage) / 100)), true
}

// ApplyDiscount returns price reduced by the offer's discount when the offer is active,
// and price unchanged when it is not. An unknown offer id is an error.
func ApplyDiscount(price int, offerID string, rules *RuleSet) (int, error) {
	if rules == nil {
		return 0, ErrInvalidRules
	}
	offer, ok := rules.Offer(offerID)
	if !ok {
		return 0, fmt.Errorf("offer %q: %w", offerID, ErrInvalidOfferID)
	}
	if !offer.Active {
		return price, nil
	}
	p := float64(price)
	return roundToTen(p - p*float64(offer.Discount)/100), nil
}

// NewQuote computes price, deposit and discount for req in one pass.
func NewQuote(req QuoteRequest, rules *RuleSet) (*Quote, error) {
	price, err := CalculatePrice(req.Size, req.Style, req.Placement, req.Complexity, rules)
	if err != nil {
		return nil, err
	}

	q := &Quote{Price: price}
	if deposit, ok := CalculateDeposit(price, rules); ok {
		q.Deposit = &deposit
	}

	if req.OfferID != "" {
		discounted, err := ApplyDiscount(price, req.OfferID, rules)
		if err != nil {
			return nil, err
		}
		if offer, _ := rules.Offer(req.OfferID); offer.Active {
			q.DiscountedPrice = &discounted
			q.OfferID = req.OfferID
		}
	}
	return q, nil
}

// complexity 0 → 0.5, 50 → 1.0, 100 → 1.5
func complexityFactor(complexity int) float64 {
	return 1 + float64(complexity-NeutralComplexity)/100
}

func roundToTen(v float64) int {
	return int(math.Round(v/10) * 10)
}
