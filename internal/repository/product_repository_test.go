package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"handcrafted-haven/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogSeed struct {
	userID     uuid.UUID
	artisanID  uuid.UUID
	categoryID uuid.UUID
}

func seedCatalog(t *testing.T, f *fixtures) catalogSeed {
	userID := f.user("Maya Potter")
	return catalogSeed{
		userID:     userID,
		artisanID:  f.artisan(userID, "Clay & Kiln", true),
		categoryID: f.category("pottery", true, 1),
	}
}

func TestProductRepository_ListEnrichesRows(t *testing.T) {
	requireDB(t)
	f := newFixtures(t)
	seed := seedCatalog(t, f)
	reviewer := f.user("Sam Buyer")

	productID := f.product(productFixture{
		artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "speckled-mug",
		price: "28.50", active: true, inventory: 3, materials: []string{"stoneware"},
	})
	f.review(productID, reviewer, 5, "approved")
	f.review(productID, reviewer, 3, "approved")
	f.review(productID, reviewer, 1, "pending")

	repo := NewProductRepository(testDB)
	products, err := repo.List(context.Background(), domain.ProductFilter{}, domain.SortNewest, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "speckled-mug", p.Slug)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("28.50")))
	assert.False(t, p.CompareAtPrice.Valid)
	assert.Equal(t, []string{"stoneware"}, p.Materials)
	assert.Equal(t, []string{}, p.Colors)
	require.NotNil(t, p.Category)
	assert.Equal(t, "pottery", p.Category.Slug)
	require.NotNil(t, p.Artisan)
	assert.Equal(t, "Clay & Kiln", p.Artisan.BusinessName)
	assert.Equal(t, "Maya Potter", p.Artisan.UserName)
	assert.InDelta(t, 4.0, p.AvgRating, 0.0001)
	assert.Equal(t, 2, p.ReviewCount)
}

func TestProductRepository_InactiveCategoryIsNotEmbedded(t *testing.T) {
	requireDB(t)
	f := newFixtures(t)
	seed := seedCatalog(t, f)
	archived := f.category("archived", false, 0)

	f.product(productFixture{artisanID: seed.artisanID, categoryID: archived, slug: "retired-vase", price: "40", active: true})

	repo := NewProductRepository(testDB)
	ctx := context.Background()

	products, err := repo.List(ctx, domain.ProductFilter{}, domain.SortNewest, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].Category)
	assert.Equal(t, archived, products[0].CategoryID)

	detail, err := repo.FindBySlug(ctx, "retired-vase")
	require.NoError(t, err)
	assert.Nil(t, detail.Category)
}

func TestProductRepository_PaginatesTwentyFive(t *testing.T) {
	requireDB(t)
	f := newFixtures(t)
	seed := seedCatalog(t, f)

	for i := 0; i < 25; i++ {
		f.product(productFixture{
			artisanID: seed.artisanID, categoryID: seed.categoryID,
			slug: fmt.Sprintf("bowl-%02d", i), price: "10", active: true,
		})
	}

	repo := NewProductRepository(testDB)
	ctx := context.Background()

	products, err := repo.List(ctx, domain.ProductFilter{}, domain.SortOldest, 10, domain.Offset(2, 10))
	require.NoError(t, err)
	require.Len(t, products, 10)
	assert.Equal(t, "bowl-10", products[0].Slug)
	assert.Equal(t, "bowl-19", products[9].Slug)

	total, err := repo.Count(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 25, total)

	meta, err := domain.NewPaginationMeta(total, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.PaginationMeta{
		CurrentPage: 2, PerPage: 10, TotalCount: 25, TotalPages: 3, HasNextPage: true, HasPreviousPage: true,
	}, meta)
}

func TestProductRepository_Filters(t *testing.T) {
	requireDB(t)
	f := newFixtures(t)
	seed := seedCatalog(t, f)
	otherUser := f.user("Lee Weaver")
	otherArtisan := f.artisan(otherUser, "Loom House", false)
	textiles := f.category("textiles", true, 2)
	reviewer := f.user("Sam Buyer")

	mug := f.product(productFixture{artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "mug", price: "20", active: true, featured: true, materials: []string{"stoneware"}})
	f.product(productFixture{artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "vase", price: "50", active: true, materials: []string{"porcelain"}})
	f.product(productFixture{artisanID: otherArtisan, categoryID: textiles, slug: "scarf", price: "75.25", active: true, materials: []string{"wool", "silk"}})
	f.product(productFixture{artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "retired-plate", price: "15", active: false})
	f.review(mug, reviewer, 5, "approved")

	uuidPtr := func(id uuid.UUID) *uuid.UUID { return &id }
	decPtr := func(s string) *decimal.Decimal { d := decimal.RequireFromString(s); return &d }
	boolPtr := func(b bool) *bool { return &b }
	floatPtr := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		filter domain.ProductFilter
		slugs  []string
	}{
		{"inactive excluded", domain.ProductFilter{}, []string{"scarf", "vase", "mug"}},
		{"category", domain.ProductFilter{CategoryID: uuidPtr(textiles)}, []string{"scarf"}},
		{"artisan", domain.ProductFilter{ArtisanID: uuidPtr(seed.artisanID)}, []string{"vase", "mug"}},
		{"inclusive price range", domain.ProductFilter{MinPrice: decPtr("20"), MaxPrice: decPtr("50")}, []string{"vase", "mug"}},
		{"min above max", domain.ProductFilter{MinPrice: decPtr("50"), MaxPrice: decPtr("10")}, []string{}},
		{"featured", domain.ProductFilter{IsFeatured: boolPtr(true)}, []string{"mug"}},
		{"not featured", domain.ProductFilter{IsFeatured: boolPtr(false)}, []string{"scarf", "vase"}},
		{"any material", domain.ProductFilter{Materials: []string{"silk", "porcelain"}}, []string{"scarf", "vase"}},
		{"rating", domain.ProductFilter{RatingMin: floatPtr(4.5)}, []string{"mug"}},
	}

	repo := NewProductRepository(testDB)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.List(ctx, tt.filter, domain.SortNewest, 50, 0)
			require.NoError(t, err)

			slugs := []string{}
			for _, p := range products {
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)

			total, err := repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, len(tt.slugs), total)
		})
	}
}

func TestProductRepository_Sorts(t *testing.T) {
	requireDB(t)
	f := newFixtures(t)
	seed := seedCatalog(t, f)
	reviewer := f.user("Sam Buyer")

	cheap := f.product(productFixture{artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "cheap", price: "5", active: true})
	mid := f.product(productFixture{artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "mid", price: "40", active: true})
	f.product(productFixture{artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "dear", price: "120", active: true})

	f.review(cheap, reviewer, 2, "approved")
	f.review(cheap, reviewer, 2, "approved")
	f.review(cheap, reviewer, 2, "approved")
	f.review(mid, reviewer, 5, "approved")

	tests := []struct {
		sort  domain.ProductSort
		slugs []string
	}{
		{domain.SortNewest, []string{"dear", "mid", "cheap"}},
		{domain.SortOldest, []string{"cheap", "mid", "dear"}},
		{domain.SortPriceLow, []string{"cheap", "mid", "dear"}},
		{domain.SortPriceHigh, []string{"dear", "mid", "cheap"}},
		{domain.SortRating, []string{"mid", "cheap", "dear"}},
		{domain.SortPopularity, []string{"cheap", "mid", "dear"}},
		{domain.ProductSort("bogus"), []string{"dear", "mid", "cheap"}},
	}

	repo := NewProductRepository(testDB)
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			products, err := repo.List(context.Background(), domain.ProductFilter{}, tt.sort, 10, 0)
			require.NoError(t, err)

			slugs := []string{}
			for _, p := range products {
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)
		})
	}
}

func TestProductRepository_FindBySlug(t *testing.T) {
	requireDB(t)
	f := newFixtures(t)
	seed := seedCatalog(t, f)

	productID := f.product(productFixture{artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "teapot", price: "64", active: true, inventory: 5})
	f.product(productFixture{artisanID: seed.artisanID, categoryID: seed.categoryID, slug: "hidden", price: "9", active: false})

	_, err := testDB.Exec(`
		INSERT INTO product_images (product_id, url, sort_order, is_primary) VALUES
			($1, 'https://img.example.com/teapot-side.jpg', 2, false),
			($1, 'https://img.example.com/teapot-front.jpg', 0, true),
			($1, 'https://img.example.com/teapot-top.jpg', 1, false)
	`, productID)
	require.NoError(t, err)

	_, err = testDB.Exec(`
		INSERT INTO product_variants (product_id, name, price, attributes) VALUES
			($1, 'Small', 58.00, '{"capacity": "600ml"}'),
			($1, 'Large', NULL, '{"capacity": "1.2l", "glaze": "celadon"}')
	`, productID)
	require.NoError(t, err)

	repo := NewProductRepository(testDB)
	ctx := context.Background()

	detail, err := repo.FindBySlug(ctx, "teapot")
	require.NoError(t, err)
	assert.Equal(t, productID, detail.ID)
	assert.Equal(t, "SKU-teapot", detail.SKU)
	assert.True(t, detail.IsLowStock, "inventory 5 equals the default threshold")
	assert.False(t, detail.Weight.Valid)

	images, err := repo.ListImages(ctx, productID)
	require.NoError(t, err)
	require.Len(t, images, 3)
	for i, image := range images {
		assert.Equal(t, i, image.SortOrder)
	}
	assert.True(t, images[0].IsPrimary)

	variants, err := repo.ListVariants(ctx, productID)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "Large", variants[0].Name)
	assert.False(t, variants[0].Price.Valid)
	assert.Equal(t, "celadon", variants[0].Attributes["glaze"])
	assert.Equal(t, "Small", variants[1].Name)
	assert.True(t, variants[1].Price.Decimal.Equal(decimal.NewFromInt(58)))

	_, err = repo.FindBySlug(ctx, "hidden")
	assert.True(t, errors.Is(err, ErrProductNotFound))

	_, err = repo.FindBySlug(ctx, "no-such-product")
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestProductRepository_CancelledContext(t *testing.T) {
	requireDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProductRepository(testDB).List(ctx, domain.ProductFilter{}, domain.SortNewest, 10, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataAccess)
	assert.ErrorIs(t, err, context.Canceled)
}

// Feature: catalog, Property 5: Page sizes and counts agree with the stored catalog
func TestProperty_ListAndCountAgree(t *testing.T) {
	requireDB(t)
	f := newFixtures(t)
	seed := seedCatalog(t, f)

	const total = 17
	for i := 0; i < total; i++ {
		f.product(productFixture{
			artisanID: seed.artisanID, categoryID: seed.categoryID,
			slug: fmt.Sprintf("item-%02d", i), price: fmt.Sprintf("%d.99", i), active: true,
		})
	}

	repo := NewProductRepository(testDB)
	properties := gopter.NewProperties(nil)

	properties.Property("row count is min(per_page, remaining rows)", prop.ForAll(
		func(page, perPage int) bool {
			ctx := context.Background()
			products, err := repo.List(ctx, domain.ProductFilter{}, domain.SortPriceLow, perPage, domain.Offset(page, perPage))
			if err != nil {
				t.Logf("FAIL: list failed: %v", err)
				return false
			}

			expected := total - domain.Offset(page, perPage)
			if expected < 0 {
				expected = 0
			}
			if expected > perPage {
				expected = perPage
			}
			if len(products) != expected {
				t.Logf("FAIL: page %d per_page %d: expected %d rows, got %d", page, perPage, expected, len(products))
				return false
			}

			for i := 1; i < len(products); i++ {
				if products[i-1].Price.GreaterThan(products[i].Price) {
					t.Logf("FAIL: prices out of order at %d", i)
					return false
				}
			}

			count, err := repo.Count(ctx, domain.ProductFilter{})
			return err == nil && count == total
		},
		gen.IntRange(1, 6),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
