package domain

import "fmt"

// PaginationMeta describes one page of a result set
type PaginationMeta struct {
	CurrentPage     int  `json:"current_page"`
	PerPage         int  `json:"per_page"`
	TotalCount      int  `json:"total_count"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// PaginatedResult pairs a page of rows with its metadata
type PaginatedResult[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginationMeta computes page metadata from a total row count.
// page is taken as given and not checked against TotalPages.
func NewPaginationMeta(totalCount, page, perPage int) (PaginationMeta, error) {
	if perPage < 1 {
		return PaginationMeta{}, fmt.Errorf("%w: per_page must be at least 1, got %d", ErrInvalidArgument, perPage)
	}
	if totalCount < 0 {
		return PaginationMeta{}, fmt.Errorf("%w: total count must not be negative, got %d", ErrInvalidArgument, totalCount)
	}

	totalPages := (totalCount + perPage - 1) / perPage

	return PaginationMeta{
		CurrentPage:     page,
		PerPage:         perPage,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

// Offset returns the number of rows skipped before the given 1-indexed page
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}
