package repository

import (
	"context"
	"database/sql"
	"errors"

	"handcrafted-haven/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrArtisanNotFound = errors.New("artisan not found")
)

// ArtisanRepository defines read access to artisan profiles
type ArtisanRepository interface {
	List(ctx context.Context, featuredOnly bool) ([]*domain.ArtisanProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ArtisanProfile, error)
	Stats(ctx context.Context, id uuid.UUID) (*domain.ArtisanStats, error)
}

type artisanRepository struct {
	db *sql.DB
}

// NewArtisanRepository creates a new instance of ArtisanRepository
func NewArtisanRepository(db *sql.DB) ArtisanRepository {
	return &artisanRepository{db: db}
}

const artisanSelect = `
		SELECT ap.id, ap.user_id, u.name, ap.business_name, COALESCE(ap.description, ''),
			ap.specialties, ap.years_experience, COALESCE(ap.website_url, ''),
			COALESCE(ap.instagram_handle, ''), COALESCE(ap.facebook_url, ''),
			ap.is_verified, ap.verification_date, ap.featured, ap.created_at, ap.updated_at
		FROM artisan_profiles ap
		JOIN users u ON ap.user_id = u.id`

type artisanScanner interface {
	Scan(dest ...interface{}) error
}

func scanArtisan(s artisanScanner) (*domain.ArtisanProfile, error) {
	artisan := &domain.ArtisanProfile{}
	var verifiedAt sql.NullTime

	err := s.Scan(
		&artisan.ID,
		&artisan.UserID,
		&artisan.UserName,
		&artisan.BusinessName,
		&artisan.Description,
		pq.Array(&artisan.Specialties),
		&artisan.YearsExperience,
		&artisan.WebsiteURL,
		&artisan.InstagramHandle,
		&artisan.FacebookURL,
		&artisan.IsVerified,
		&verifiedAt,
		&artisan.Featured,
		&artisan.CreatedAt,
		&artisan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if verifiedAt.Valid {
		artisan.VerificationDate = &verifiedAt.Time
	}

	return artisan, nil
}

// List retrieves artisans, featured first then newest. With featuredOnly set
// only featured profiles are returned.
func (r *artisanRepository) List(ctx context.Context, featuredOnly bool) ([]*domain.ArtisanProfile, error) {
	query := artisanSelect + `
		WHERE ($1::boolean = false OR ap.featured = true)
		ORDER BY ap.featured DESC, ap.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, featuredOnly)
	if err != nil {
		return nil, dataAccess("list artisans", err)
	}
	defer rows.Close()

	artisans := []*domain.ArtisanProfile{}
	for rows.Next() {
		artisan, err := scanArtisan(rows)
		if err != nil {
			return nil, dataAccess("scan artisan", err)
		}
		artisans = append(artisans, artisan)
	}

	if err := rows.Err(); err != nil {
		return nil, dataAccess("iterate artisans", err)
	}

	return artisans, nil
}

// FindByID retrieves an artisan profile by ID
func (r *artisanRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ArtisanProfile, error) {
	query := artisanSelect + `
		WHERE ap.id = $1
	`

	artisan, err := scanArtisan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrArtisanNotFound
		}
		return nil, dataAccess("find artisan by ID", err)
	}

	return artisan, nil
}

// Stats counts an artisan's active products and averages the approved
// reviews across them
func (r *artisanRepository) Stats(ctx context.Context, id uuid.UUID) (*domain.ArtisanStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE artisan_id = $1 AND is_active = true),
			COALESCE((
				SELECT AVG(rv.rating::numeric)
				FROM reviews rv
				JOIN products p ON rv.product_id = p.id
				WHERE p.artisan_id = $1 AND rv.status = 'approved'
			), 0)::float8
	`

	stats := &domain.ArtisanStats{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&stats.ActiveProducts, &stats.AvgRating); err != nil {
		return nil, dataAccess("load artisan stats", err)
	}

	return stats, nil
}
