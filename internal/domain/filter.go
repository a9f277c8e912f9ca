package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows the catalog before pagination. Nil and empty fields
// contribute no predicate.
type ProductFilter struct {
	CategoryID *uuid.UUID
	ArtisanID  *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	IsFeatured *bool
	RatingMin  *float64

	// Any-of matches against the product's attribute sets
	Materials []string
	Colors    []string
	Sizes     []string
	Tags      []string
}

// ProductSort selects the catalog ordering
type ProductSort string

const (
	SortNewest     ProductSort = "newest"
	SortOldest     ProductSort = "oldest"
	SortPriceLow   ProductSort = "price_low"
	SortPriceHigh  ProductSort = "price_high"
	SortRating     ProductSort = "rating"
	SortPopularity ProductSort = "popularity"
)

// Known reports whether s is one of the defined orderings
func (s ProductSort) Known() bool {
	switch s {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortRating, SortPopularity:
		return true
	}
	return false
}

// OrDefault returns s, or SortNewest when s is empty or unknown
func (s ProductSort) OrDefault() ProductSort {
	if s.Known() {
		return s
	}
	return SortNewest
}
