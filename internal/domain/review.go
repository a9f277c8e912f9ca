package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the moderation state of a review
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is an approved review as shown to buyers
type Review struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	HelpfulCount       int       `json:"helpful_count"`
	UserName           string    `json:"user_name"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// ReviewSummary aggregates approved reviews of one product
type ReviewSummary struct {
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int     `json:"total_reviews"`
}

// ReviewPage is one page of approved reviews plus the product's summary
type ReviewPage struct {
	Reviews []*Review      `json:"reviews"`
	Meta    PaginationMeta `json:"meta"`
	Summary ReviewSummary  `json:"summary"`
}
