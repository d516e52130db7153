package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkhouse/tattoo-booking-backend/internal/pkg/apperror"
)

func TestCalculatePrice(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name       string
		size       string
		style      string
		placement  string
		complexity int
		want       int
		wantErr    error
	}{
		{
			name:       "Neutral complexity uses multipliers only",
			size:       "Orta",
			style:      "Realistik",
			placement:  "Kol",
			complexity: 50,
			want:       1500,
		},
		{
			name:       "Zero complexity halves the price",
			size:       "Orta",
			style:      "Realistik",
			placement:  "Kol",
			complexity: 0,
			want:       750,
		},
		{
			name:       "Maximum complexity adds half",
			size:       "Orta",
			style:      "Realistik",
			placement:  "Kol",
			complexity: 100,
			want:       2250,
		},
		{
			name:       "Result is rounded to the nearest ten",
			size:       "Mini",
			style:      "Suluboya",
			placement:  "Bilek",
			complexity: 57,
			want:       460, // 300 * 1.3 * 1.1 * 1.07 = 459.03
		},
		{
			name:       "Unknown size",
			size:       "Devasa",
			style:      "Realistik",
			placement:  "Kol",
			complexity: 50,
			wantErr:    ErrInvalidSelection,
		},
		{
			name:       "Unknown style",
			size:       "Orta",
			style:      "Kübizm",
			placement:  "Kol",
			complexity: 50,
			wantErr:    ErrInvalidSelection,
		},
		{
			name:       "Unknown placement",
			size:       "Orta",
			style:      "Realistik",
			placement:  "Kulak",
			complexity: 50,
			wantErr:    ErrInvalidSelection,
		},
		{
			name:       "Complexity below range",
			size:       "Orta",
			style:      "Realistik",
			placement:  "Kol",
			complexity: -1,
			wantErr:    ErrInvalidComplexity,
		},
		{
			name:       "Complexity above range",
			size:       "Orta",
			style:      "Realistik",
			placement:  "Kol",
			complexity: 101,
			wantErr:    ErrInvalidComplexity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePrice(tt.size, tt.style, tt.placement, tt.complexity, rules)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculatePrice_NilRules(t *testing.T) {
	_, err := CalculatePrice("Orta", "Realistik", "Kol", 50, nil)
	assert.ErrorIs(t, err, ErrInvalidRules)
}

func TestCalculatePrice_Properties(t *testing.T) {
	rules := DefaultRules()

	for _, size := range rules.Sizes {
		for _, style := range rules.Styles {
			for _, placement := range rules.Placements {
				prev := -1
				for complexity := MinComplexity; complexity <= MaxComplexity; complexity++ {
					price, err := CalculatePrice(size.Name, style.Name, placement.Name, complexity, rules)
					require.NoError(t, err)

					again, err := CalculatePrice(size.Name, style.Name, placement.Name, complexity, rules)
					require.NoError(t, err)
					require.Equal(t, price, again, "deterministic")

					require.Zero(t, price%10, "multiple of ten: %s/%s/%s/%d = %d",
						size.Name, style.Name, placement.Name, complexity, price)
					require.GreaterOrEqual(t, price, prev, "non-decreasing in complexity")
					prev = price
				}
			}
		}
	}
}

func TestCalculateDeposit(t *testing.T) {
	rules := DefaultRules()

	deposit, ok := CalculateDeposit(1500, rules)
	require.True(t, ok)
	assert.Equal(t, 300, deposit)

	rules.DepositRequired = false
	_, ok = CalculateDeposit(1500, rules)
	assert.False(t, ok)

	_, ok = CalculateDeposit(1500, nil)
	assert.False(t, ok)
}

func TestCalculateDeposit_Bound(t *testing.T) {
	rules := DefaultRules()
	for _, pct := range []int{0, 1, 20, 33, 50, 99, 100} {
		rules.DepositPercentage = pct
		for _, price := range []int{10, 150, 750, 1500, 5250} {
			deposit, ok := CalculateDeposit(price, rules)
			require.True(t, ok)
			assert.GreaterOrEqual(t, deposit, 0)
			assert.LessOrEqual(t, deposit, price)
		}
	}
}

func TestApplyDiscount(t *testing.T) {
	rules := DefaultRules()

	t.Run("Active offer", func(t *testing.T) {
		got, err := ApplyDiscount(1500, "first-tattoo", rules)
		require.NoError(t, err)
		assert.Equal(t, 1350, got)
	})

	t.Run("Inactive offer leaves price unchanged", func(t *testing.T) {
		got, err := ApplyDiscount(1500, "weekday", rules)
		require.NoError(t, err)
		assert.Equal(t, 1500, got)
	})

	t.Run("Unknown offer", func(t *testing.T) {
		_, err := ApplyDiscount(1500, "black-friday", rules)
		assert.ErrorIs(t, err, ErrInvalidOfferID)
	})

	t.Run("Never exceeds price", func(t *testing.T) {
		for _, discount := range []int{0, 5, 10, 15, 50, 100} {
			r := DefaultRules()
			r.SpecialOffers = []SpecialOffer{{ID: "x", Name: "X", Discount: discount, Active: true}}
			for _, price := range []int{10, 460, 1500, 5250} {
				got, err := ApplyDiscount(price, "x", r)
				require.NoError(t, err)
				assert.LessOrEqual(t, got, price)
			}
		}
	})
}

func TestNewQuote(t *testing.T) {
	rules := DefaultRules()

	t.Run("Deposit and active offer", func(t *testing.T) {
		q, err := NewQuote(QuoteRequest{
			Size: "Orta", Style: "Realistik", Placement: "Kol", Complexity: 50, OfferID: "first-tattoo",
		}, rules)
		require.NoError(t, err)
		assert.Equal(t, 1500, q.Price)
		require.NotNil(t, q.Deposit)
		assert.Equal(t, 300, *q.Deposit)
		require.NotNil(t, q.DiscountedPrice)
		assert.Equal(t, 1350, *q.DiscountedPrice)
		assert.Equal(t, "first-tattoo", q.OfferID)
		assert.Equal(t, 1350, q.FinalPrice())
	})

	t.Run("Inactive offer is not recorded", func(t *testing.T) {
		q, err := NewQuote(QuoteRequest{
			Size: "Orta", Style: "Realistik", Placement: "Kol", Complexity: 50, OfferID: "weekday",
		}, rules)
		require.NoError(t, err)
		assert.Nil(t, q.DiscountedPrice)
		assert.Empty(t, q.OfferID)
		assert.Equal(t, 1500, q.FinalPrice())
	})

	t.Run("No deposit required", func(t *testing.T) {
		r := DefaultRules()
		r.DepositRequired = false
		q, err := NewQuote(QuoteRequest{Size: "Mini", Style: "Yazı", Placement: "Kol", Complexity: 50}, r)
		require.NoError(t, err)
		assert.Equal(t, 300, q.Price)
		assert.Nil(t, q.Deposit)
	})

	t.Run("Unknown offer fails the quote", func(t *testing.T) {
		_, err := NewQuote(QuoteRequest{
			Size: "Orta", Style: "Realistik", Placement: "Kol", Complexity: 50, OfferID: "nope",
		}, rules)
		assert.ErrorIs(t, err, ErrInvalidOfferID)
	})
}
