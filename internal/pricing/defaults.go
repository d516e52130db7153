package pricing

// DefaultRules is the rule set served until an admin saves one. Amounts are in TRY.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Sizes: []Size{
			{ID: "xs", Name: "Mini", BasePrice: 300},
			{ID: "s", Name: "Küçük", BasePrice: 500},
			{ID: "m", Name: "Orta", BasePrice: 1000},
			{ID: "l", Name: "Büyük", BasePrice: 2000},
			{ID: "xl", Name: "Çok Büyük", BasePrice: 3500},
		},
		Styles: []Style{
			{ID: "minimal", Name: "Minimalist", Multiplier: 1.0},
			{ID: "lettering", Name: "Yazı", Multiplier: 1.0},
			{ID: "traditional", Name: "Geleneksel", Multiplier: 1.2},
			{ID: "blackwork", Name: "Blackwork", Multiplier: 1.2},
			{ID: "watercolor", Name: "Suluboya", Multiplier: 1.3},
			{ID: "japanese", Name: "Japon", Multiplier: 1.4},
			{ID: "realistic", Name: "Realistik", Multiplier: 1.5},
		},
		Placements: []Placement{
			{ID: "arm", Name: "Kol", Multiplier: 1.0},
			{ID: "leg", Name: "Bacak", Multiplier: 1.0},
			{ID: "wrist", Name: "Bilek", Multiplier: 1.1},
			{ID: "chest", Name: "Göğüs", Multiplier: 1.2},
			{ID: "back", Name: "Sırt", Multiplier: 1.3},
			{ID: "neck", Name: "Boyun", Multiplier: 1.4},
			{ID: "hand", Name: "El", Multiplier: 1.5},
		},
		SpecialOffers: []SpecialOffer{
			{ID: "first-tattoo", Name: "İlk Dövme İndirimi", Discount: 10, Active: true},
			{ID: "weekday", Name: "Hafta İçi İndirimi", Discount: 15, Active: false},
		},
		DepositRequired:   true,
		DepositPercentage: 20,
	}
}
