package repository

import (
	"context"
	"database/sql"
	"errors"

	"handcrafted-haven/internal/domain"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository defines read access to active categories
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `
		id, name, slug, COALESCE(description, ''), parent_id, COALESCE(image_url, ''),
		is_active, sort_order, created_at, updated_at`

func categoryDest(category *domain.Category) []interface{} {
	return []interface{}{
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.ParentID,
		&category.ImageURL,
		&category.IsActive,
		&category.SortOrder,
		&category.CreatedAt,
		&category.UpdatedAt,
	}
}

// ListActive retrieves all active categories in display order
func (r *categoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT` + categoryColumns + `
		FROM categories
		WHERE is_active = true
		ORDER BY sort_order ASC, name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dataAccess("list categories", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category := &domain.Category{}
		if err := rows.Scan(categoryDest(category)...); err != nil {
			return nil, dataAccess("scan category", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, dataAccess("iterate categories", err)
	}

	return categories, nil
}

// FindBySlug retrieves an active category by slug
func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `
		SELECT` + categoryColumns + `
		FROM categories
		WHERE slug = $1 AND is_active = true
	`

	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(categoryDest(category)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, dataAccess("find category by slug", err)
	}

	return category, nil
}
