package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxPerPage caps page sizes when no limit is configured
const DefaultMaxPerPage = 100

// ListProductsParams is one catalog page request
type ListProductsParams struct {
	Filter  domain.ProductFilter
	Sort    domain.ProductSort
	Page    int
	PerPage int
}

// CatalogService defines the interface for product and category queries
type CatalogService interface {
	ListProducts(ctx context.Context, params ListProductsParams) (*domain.PaginatedResult[*domain.ProductSummary], error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.ProductDetail, bool, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, bool, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	maxPerPage   int
}

// NewCatalogService creates a new instance of CatalogService. A non-positive
// maxPerPage falls back to DefaultMaxPerPage.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	maxPerPage int,
) CatalogService {
	if maxPerPage < 1 {
		maxPerPage = DefaultMaxPerPage
	}
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		maxPerPage:   maxPerPage,
	}
}

// ListProducts returns one page of active products. The page query and the
// count query run concurrently and both must succeed.
func (s *catalogService) ListProducts(ctx context.Context, params ListProductsParams) (*domain.PaginatedResult[*domain.ProductSummary], error) {
	if err := validatePage(params.Page, params.PerPage, s.maxPerPage); err != nil {
		return nil, err
	}

	var (
		products []*domain.ProductSummary
		total    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.productRepo.List(gctx, params.Filter, params.Sort, params.PerPage, domain.Offset(params.Page, params.PerPage))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.productRepo.Count(gctx, params.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meta, err := domain.NewPaginationMeta(total, params.Page, params.PerPage)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResult[*domain.ProductSummary]{
		Data: products,
		Meta: meta,
	}, nil
}

// GetProductBySlug assembles a product with its images and variants. A missing
// or inactive product reports found=false with a nil error.
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.ProductDetail, bool, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product.Images, err = s.productRepo.ListImages(gctx, product.ID)
		return err
	})
	g.Go(func() error {
		var err error
		product.Variants, err = s.productRepo.ListVariants(gctx, product.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	return product, true, nil
}

// ListCategories returns the active categories in display order
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

// GetCategoryBySlug retrieves an active category; found=false when absent
func (s *catalogService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, bool, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return category, true, nil
}

func validatePage(page, perPage, maxPerPage int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", domain.ErrInvalidArgument, page)
	}
	if perPage < 1 || perPage > maxPerPage {
		return fmt.Errorf("%w: per_page must be between 1 and %d, got %d", domain.ErrInvalidArgument, maxPerPage, perPage)
	}
	// The row offset (page-1)*perPage must fit in an int
	if page-1 > math.MaxInt/perPage {
		return fmt.Errorf("%w: page %d is out of range", domain.ErrInvalidArgument, page)
	}
	return nil
}
