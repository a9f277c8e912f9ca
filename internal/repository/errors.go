package repository

import (
	"fmt"

	"handcrafted-haven/internal/domain"
)

// dataAccess tags err as a storage failure while keeping it unwrappable
func dataAccess(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", domain.ErrDataAccess, op, err)
}
