package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRef is the category projection embedded in product rows
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ArtisanRef is the artisan projection embedded in product rows
type ArtisanRef struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	UserName     string    `json:"user_name"`
}

// ProductSummary is a catalog listing row enriched with its category,
// artisan and approved review aggregates
type ProductSummary struct {
	ID                uuid.UUID           `json:"id"`
	ArtisanID         uuid.UUID           `json:"artisan_id"`
	CategoryID        uuid.UUID           `json:"category_id"`
	Name              string              `json:"name"`
	Slug              string              `json:"slug"`
	Description       string              `json:"description"`
	Price             decimal.Decimal     `json:"price"`
	CompareAtPrice    decimal.NullDecimal `json:"compare_at_price"`
	InventoryQuantity int                 `json:"inventory_quantity"`
	LowStockThreshold int                 `json:"low_stock_threshold"`
	Materials         []string            `json:"materials"`
	Colors            []string            `json:"colors"`
	Sizes             []string            `json:"sizes"`
	Tags              []string            `json:"tags"`
	IsActive          bool                `json:"is_active"`
	IsFeatured        bool                `json:"is_featured"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`

	Category    *CategoryRef `json:"category"`
	Artisan     *ArtisanRef  `json:"artisan"`
	AvgRating   float64      `json:"avg_rating"`
	ReviewCount int          `json:"review_count"`
}

// LowStock reports whether inventory has fallen to the low-stock threshold
func (p *ProductSummary) LowStock() bool {
	return p.InventoryQuantity <= p.LowStockThreshold
}

// ProductImage is one image of a product, ordered by SortOrder
type ProductImage struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
	AltText   string    `json:"alt_text"`
	SortOrder int       `json:"sort_order"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductVariant is a purchasable variation of a product
type ProductVariant struct {
	ID                uuid.UUID           `json:"id"`
	ProductID         uuid.UUID           `json:"product_id"`
	Name              string              `json:"name"`
	SKU               string              `json:"sku"`
	Price             decimal.NullDecimal `json:"price"`
	InventoryQuantity int                 `json:"inventory_quantity"`
	Attributes        map[string]string   `json:"attributes"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ProductDetail is the single-product view served by slug
type ProductDetail struct {
	ProductSummary

	SKU            string              `json:"sku"`
	Weight         decimal.NullDecimal `json:"weight"`
	Dimensions     string              `json:"dimensions"`
	SEOTitle       string              `json:"seo_title"`
	SEODescription string              `json:"seo_description"`
	IsLowStock     bool                `json:"is_low_stock"`

	Images   []*ProductImage   `json:"images"`
	Variants []*ProductVariant `json:"variants"`
}
