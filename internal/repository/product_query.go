package repository

import (
	"fmt"
	"strings"

	"handcrafted-haven/internal/domain"
)

// productFrom joins every relation a catalog row is enriched with. Listing,
// counting and slug lookup share it so their predicates see identical rows.
const productFrom = `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id AND c.is_active = true
		LEFT JOIN artisan_profiles ap ON p.artisan_id = ap.id
		LEFT JOIN users u ON ap.user_id = u.id
		LEFT JOIN (
			SELECT product_id, AVG(rating::numeric) AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			WHERE status = 'approved'
			GROUP BY product_id
		) r ON p.id = r.product_id`

const productSummaryColumns = `
		p.id, p.artisan_id, p.category_id, p.name, p.slug, COALESCE(p.description, ''),
		p.price, p.compare_at_price, p.inventory_quantity, p.low_stock_threshold,
		p.materials, p.colors, p.sizes, p.tags, p.is_active, p.is_featured,
		p.created_at, p.updated_at,
		c.id, c.name, c.slug,
		ap.id, ap.business_name, u.name,
		COALESCE(r.avg_rating, 0)::float8 AS avg_rating,
		COALESCE(r.review_count, 0) AS review_count`

var productOrderBy = map[domain.ProductSort]string{
	domain.SortNewest:     "p.created_at DESC",
	domain.SortOldest:     "p.created_at ASC",
	domain.SortPriceLow:   "p.price ASC",
	domain.SortPriceHigh:  "p.price DESC",
	domain.SortRating:     "avg_rating DESC, p.created_at DESC",
	domain.SortPopularity: "review_count DESC, p.created_at DESC",
}

// productClauses is the rendered form of a filter and sort: predicates refer
// to their values only through $n placeholders, numbered in args order.
type productClauses struct {
	predicates []string
	args       []interface{}
	orderBy    string
}

// buildProductClauses renders filter and sort into SQL fragments. It never
// executes anything and never writes a filter value into the SQL text.
func buildProductClauses(filter domain.ProductFilter, sort domain.ProductSort) *productClauses {
	c := &productClauses{
		predicates: []string{"p.is_active = true"},
		orderBy:    productOrderBy[sort.OrDefault()],
	}

	if filter.CategoryID != nil {
		c.add("p.category_id = %s", *filter.CategoryID)
	}
	if filter.ArtisanID != nil {
		c.add("p.artisan_id = %s", *filter.ArtisanID)
	}
	if filter.MinPrice != nil {
		c.add("p.price >= %s", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		c.add("p.price <= %s", *filter.MaxPrice)
	}
	if filter.IsFeatured != nil {
		c.add("p.is_featured = %s", *filter.IsFeatured)
	}
	if filter.RatingMin != nil {
		c.add("COALESCE(r.avg_rating, 0) >= %s", *filter.RatingMin)
	}
	if len(filter.Materials) > 0 {
		c.add("p.materials && %s::text[]", filter.Materials)
	}
	if len(filter.Colors) > 0 {
		c.add("p.colors && %s::text[]", filter.Colors)
	}
	if len(filter.Sizes) > 0 {
		c.add("p.sizes && %s::text[]", filter.Sizes)
	}
	if len(filter.Tags) > 0 {
		c.add("p.tags && %s::text[]", filter.Tags)
	}

	return c
}

// add binds value to the next placeholder and appends the predicate using it
func (c *productClauses) add(format string, value interface{}) {
	c.predicates = append(c.predicates, fmt.Sprintf(format, c.bind(value)))
}

func (c *productClauses) bind(value interface{}) string {
	c.args = append(c.args, value)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *productClauses) where() string {
	return "WHERE " + strings.Join(c.predicates, " AND ")
}

// selectQuery renders the paginated row query; the returned args extend the
// filter args with LIMIT and OFFSET.
func (c *productClauses) selectQuery(limit, offset int) (string, []interface{}) {
	args := make([]interface{}, len(c.args), len(c.args)+2)
	copy(args, c.args)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, productSummaryColumns, productFrom, c.where(), c.orderBy, len(args)-1, len(args))

	return query, args
}

// countQuery renders the total-count query over the same rows as selectQuery
func (c *productClauses) countQuery() (string, []interface{}) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		%s
		%s
	`, productFrom, c.where())

	return query, c.args
}
