package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArtisanProfile is the seller profile owned by exactly one artisan user
type ArtisanProfile struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	UserName         string     `json:"user_name"`
	BusinessName     string     `json:"business_name"`
	Description      string     `json:"description"`
	Specialties      []string   `json:"specialties"`
	YearsExperience  int        `json:"years_experience"`
	WebsiteURL       string     `json:"website_url,omitempty"`
	InstagramHandle  string     `json:"instagram_handle,omitempty"`
	FacebookURL      string     `json:"facebook_url,omitempty"`
	IsVerified       bool       `json:"is_verified"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
	Featured         bool       `json:"featured"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ArtisanStats aggregates an artisan's active catalog and approved ratings
type ArtisanStats struct {
	ActiveProducts int     `json:"active_products"`
	AvgRating      float64 `json:"avg_rating"`
}

// ArtisanDetail is a profile together with its catalog stats
type ArtisanDetail struct {
	Artisan *ArtisanProfile `json:"artisan"`
	Stats   *ArtisanStats   `json:"stats"`
}
