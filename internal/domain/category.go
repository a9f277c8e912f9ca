package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node of the category tree. ParentID is not enforced acyclic.
type Category struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	ParentID    uuid.NullUUID `json:"parent_id"`
	ImageURL    string        `json:"image_url"`
	IsActive    bool          `json:"is_active"`
	SortOrder   int           `json:"sort_order"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
