package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"handcrafted-haven/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines read access to the product catalog
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, offset int) ([]*domain.ProductSummary, error)
	Count(ctx context.Context, filter domain.ProductFilter) (int, error)
	FindBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error)
	ListImages(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error)
	ListVariants(ctx context.Context, productID uuid.UUID) ([]*domain.ProductVariant, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns one page of active products matching filter in sort order
func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, offset int) ([]*domain.ProductSummary, error) {
	query, args := buildProductClauses(filter, sort).selectQuery(limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dataAccess("list products", err)
	}
	defer rows.Close()

	products := make([]*domain.ProductSummary, 0, limit)
	for rows.Next() {
		var row productRow
		if err := rows.Scan(row.summaryDest()...); err != nil {
			return nil, dataAccess("scan product", err)
		}
		products = append(products, row.summary())
	}

	if err := rows.Err(); err != nil {
		return nil, dataAccess("iterate products", err)
	}

	return products, nil
}

// Count returns how many active products match filter
func (r *productRepository) Count(ctx context.Context, filter domain.ProductFilter) (int, error) {
	query, args := buildProductClauses(filter, domain.SortNewest).countQuery()

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, dataAccess("count products", err)
	}

	return total, nil
}

// FindBySlug retrieves an active product with its detail columns. Images and
// variants are loaded separately.
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			COALESCE(p.sku, ''), p.weight, COALESCE(p.dimensions, ''),
			COALESCE(p.seo_title, ''), COALESCE(p.seo_description, '')
		%s
		WHERE p.slug = $1 AND p.is_active = true
	`, productSummaryColumns, productFrom)

	var row productRow
	detail := &domain.ProductDetail{}
	dest := append(row.summaryDest(),
		&detail.SKU,
		&detail.Weight,
		&detail.Dimensions,
		&detail.SEOTitle,
		&detail.SEODescription,
	)

	err := r.db.QueryRowContext(ctx, query, slug).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, dataAccess("find product by slug", err)
	}

	detail.ProductSummary = *row.summary()
	detail.IsLowStock = detail.LowStock()

	return detail, nil
}

// ListImages returns a product's images in display order
func (r *productRepository) ListImages(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error) {
	query := `
		SELECT id, product_id, url, COALESCE(alt_text, ''), sort_order, is_primary, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, dataAccess("list product images", err)
	}
	defer rows.Close()

	images := []*domain.ProductImage{}
	for rows.Next() {
		image := &domain.ProductImage{}
		err := rows.Scan(
			&image.ID,
			&image.ProductID,
			&image.URL,
			&image.AltText,
			&image.SortOrder,
			&image.IsPrimary,
			&image.CreatedAt,
		)
		if err != nil {
			return nil, dataAccess("scan product image", err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, dataAccess("iterate product images", err)
	}

	return images, nil
}

// ListVariants returns a product's variants ordered by name
func (r *productRepository) ListVariants(ctx context.Context, productID uuid.UUID) ([]*domain.ProductVariant, error) {
	query := `
		SELECT id, product_id, name, COALESCE(sku, ''), price, inventory_quantity, attributes, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, dataAccess("list product variants", err)
	}
	defer rows.Close()

	variants := []*domain.ProductVariant{}
	for rows.Next() {
		variant := &domain.ProductVariant{}
		var attributes []byte
		err := rows.Scan(
			&variant.ID,
			&variant.ProductID,
			&variant.Name,
			&variant.SKU,
			&variant.Price,
			&variant.InventoryQuantity,
			&attributes,
			&variant.CreatedAt,
			&variant.UpdatedAt,
		)
		if err != nil {
			return nil, dataAccess("scan product variant", err)
		}

		variant.Attributes = map[string]string{}
		if len(attributes) > 0 {
			if err := json.Unmarshal(attributes, &variant.Attributes); err != nil {
				return nil, dataAccess("decode variant attributes", err)
			}
		}
		variants = append(variants, variant)
	}

	if err := rows.Err(); err != nil {
		return nil, dataAccess("iterate product variants", err)
	}

	return variants, nil
}

// productRow holds the scan targets for productSummaryColumns. The category
// and artisan columns come from LEFT JOINs and may be NULL.
type productRow struct {
	p domain.ProductSummary

	categoryID   uuid.NullUUID
	categoryName sql.NullString
	categorySlug sql.NullString
	artisanID    uuid.NullUUID
	businessName sql.NullString
	userName     sql.NullString
}

func (row *productRow) summaryDest() []interface{} {
	return []interface{}{
		&row.p.ID,
		&row.p.ArtisanID,
		&row.p.CategoryID,
		&row.p.Name,
		&row.p.Slug,
		&row.p.Description,
		&row.p.Price,
		&row.p.CompareAtPrice,
		&row.p.InventoryQuantity,
		&row.p.LowStockThreshold,
		pq.Array(&row.p.Materials),
		pq.Array(&row.p.Colors),
		pq.Array(&row.p.Sizes),
		pq.Array(&row.p.Tags),
		&row.p.IsActive,
		&row.p.IsFeatured,
		&row.p.CreatedAt,
		&row.p.UpdatedAt,
		&row.categoryID,
		&row.categoryName,
		&row.categorySlug,
		&row.artisanID,
		&row.businessName,
		&row.userName,
		&row.p.AvgRating,
		&row.p.ReviewCount,
	}
}

func (row *productRow) summary() *domain.ProductSummary {
	p := row.p

	if row.categoryID.Valid {
		p.Category = &domain.CategoryRef{
			ID:   row.categoryID.UUID,
			Name: row.categoryName.String,
			Slug: row.categorySlug.String,
		}
	}
	if row.artisanID.Valid {
		p.Artisan = &domain.ArtisanRef{
			ID:           row.artisanID.UUID,
			BusinessName: row.businessName.String,
			UserName:     row.userName.String,
		}
	}

	return &p
}
