package service

import (
	"context"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ReviewService defines the interface for reading approved reviews
type ReviewService interface {
	ListReviews(ctx context.Context, productID uuid.UUID, page, perPage int) (*domain.ReviewPage, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	maxPerPage int
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, maxPerPage int) ReviewService {
	if maxPerPage < 1 {
		maxPerPage = DefaultMaxPerPage
	}
	return &reviewService{reviewRepo: reviewRepo, maxPerPage: maxPerPage}
}

// ListReviews returns one page of a product's approved reviews together with
// the product's review summary. The summary count drives pagination.
func (s *reviewService) ListReviews(ctx context.Context, productID uuid.UUID, page, perPage int) (*domain.ReviewPage, error) {
	if err := validatePage(page, perPage, s.maxPerPage); err != nil {
		return nil, err
	}

	var (
		reviews []*domain.Review
		summary *domain.ReviewSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reviews, err = s.reviewRepo.ListApproved(gctx, productID, perPage, domain.Offset(page, perPage))
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.reviewRepo.Summary(gctx, productID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meta, err := domain.NewPaginationMeta(summary.TotalReviews, page, perPage)
	if err != nil {
		return nil, err
	}

	return &domain.ReviewPage{
		Reviews: reviews,
		Meta:    meta,
		Summary: *summary,
	}, nil
}
