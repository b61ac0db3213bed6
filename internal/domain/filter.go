package domain

import "github.com/shopspring/decimal"

// FilterState is a combination of catalog filter dimensions. An empty
// dimension places no constraint; a product must satisfy every non-empty
// dimension to match.
type FilterState struct {
	Types         []ProductType   `json:"types"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	Themes        []string        `json:"themes"`
	MinPrice      decimal.Decimal `json:"min_price"`
	MaxPrice      decimal.Decimal `json:"max_price"`
	HasPriceRange bool            `json:"has_price_range"`
}
