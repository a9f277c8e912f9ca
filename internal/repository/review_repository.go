package repository

import (
	"context"
	"database/sql"

	"handcrafted-haven/internal/domain"

	"github.com/google/uuid"
)

// ReviewRepository defines read access to approved reviews
type ReviewRepository interface {
	ListApproved(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.Review, error)
	Summary(ctx context.Context, productID uuid.UUID) (*domain.ReviewSummary, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// ListApproved retrieves one page of a product's approved reviews, newest first
func (r *reviewRepository) ListApproved(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*domain.Review, error) {
	query := `
		SELECT rv.id, rv.product_id, rv.rating, rv.title, COALESCE(rv.comment, ''),
			rv.is_verified_purchase, rv.helpful_count, u.name, COALESCE(up.avatar_url, ''),
			rv.created_at
		FROM reviews rv
		JOIN users u ON rv.user_id = u.id
		LEFT JOIN user_profiles up ON up.user_id = u.id
		WHERE rv.product_id = $1 AND rv.status = $2
		ORDER BY rv.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.QueryContext(ctx, query, productID, string(domain.ReviewStatusApproved), limit, offset)
	if err != nil {
		return nil, dataAccess("list reviews", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review := &domain.Review{}
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.Rating,
			&review.Title,
			&review.Comment,
			&review.IsVerifiedPurchase,
			&review.HelpfulCount,
			&review.UserName,
			&review.AvatarURL,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, dataAccess("scan review", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, dataAccess("iterate reviews", err)
	}

	return reviews, nil
}

// Summary returns the approved average rating, rounded to one decimal, and
// the approved review count of a product
func (r *reviewRepository) Summary(ctx context.Context, productID uuid.UUID) (*domain.ReviewSummary, error) {
	query := `
		SELECT COALESCE(ROUND(AVG(rating::numeric), 1), 0)::float8, COUNT(*)
		FROM reviews
		WHERE product_id = $1 AND status = $2
	`

	summary := &domain.ReviewSummary{}
	err := r.db.QueryRowContext(ctx, query, productID, string(domain.ReviewStatusApproved)).
		Scan(&summary.AvgRating, &summary.TotalReviews)
	if err != nil {
		return nil, dataAccess("summarize reviews", err)
	}

	return summary, nil
}
