package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ListProductsQuery represents the raw catalog listing query string
type ListProductsQuery struct {
	pageQuery
	Sort       string `query:"sort" validate:"omitempty,max=32"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	ArtisanID  string `query:"artisan_id" validate:"omitempty,uuid"`
	MinPrice   string `query:"min_price" validate:"omitempty,numeric"`
	MaxPrice   string `query:"max_price" validate:"omitempty,numeric"`
	IsFeatured string `query:"is_featured" validate:"omitempty,boolean"`
	RatingMin  string `query:"rating_min" validate:"omitempty,numeric"`
	Materials  string `query:"materials" validate:"omitempty,max=512"`
	Colors     string `query:"colors" validate:"omitempty,max=512"`
	Sizes      string `query:"sizes" validate:"omitempty,max=512"`
	Tags       string `query:"tags" validate:"omitempty,max=512"`
}

func parseListProductsQuery(r *http.Request) ListProductsQuery {
	values := r.URL.Query()
	return ListProductsQuery{
		pageQuery: pageQuery{
			Page:    values.Get("page"),
			PerPage: values.Get("per_page"),
		},
		Sort:       values.Get("sort"),
		CategoryID: values.Get("category_id"),
		ArtisanID:  values.Get("artisan_id"),
		MinPrice:   values.Get("min_price"),
		MaxPrice:   values.Get("max_price"),
		IsFeatured: values.Get("is_featured"),
		RatingMin:  values.Get("rating_min"),
		Materials:  values.Get("materials"),
		Colors:     values.Get("colors"),
		Sizes:      values.Get("sizes"),
		Tags:       values.Get("tags"),
	}
}

// filter converts an already validated query into a ProductFilter
func (q ListProductsQuery) filter() (domain.ProductFilter, error) {
	var f domain.ProductFilter

	if q.CategoryID != "" {
		id, err := uuid.Parse(q.CategoryID)
		if err != nil {
			return f, fmt.Errorf("%w: category_id: %w", domain.ErrInvalidArgument, err)
		}
		f.CategoryID = &id
	}
	if q.ArtisanID != "" {
		id, err := uuid.Parse(q.ArtisanID)
		if err != nil {
			return f, fmt.Errorf("%w: artisan_id: %w", domain.ErrInvalidArgument, err)
		}
		f.ArtisanID = &id
	}
	if q.MinPrice != "" {
		price, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return f, fmt.Errorf("%w: min_price: %w", domain.ErrInvalidArgument, err)
		}
		f.MinPrice = &price
	}
	if q.MaxPrice != "" {
		price, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return f, fmt.Errorf("%w: max_price: %w", domain.ErrInvalidArgument, err)
		}
		f.MaxPrice = &price
	}
	if q.IsFeatured != "" {
		featured, err := strconv.ParseBool(q.IsFeatured)
		if err != nil {
			return f, fmt.Errorf("%w: is_featured: %w", domain.ErrInvalidArgument, err)
		}
		f.IsFeatured = &featured
	}
	if q.RatingMin != "" {
		rating, err := strconv.ParseFloat(q.RatingMin, 64)
		if err != nil {
			return f, fmt.Errorf("%w: rating_min: %w", domain.ErrInvalidArgument, err)
		}
		f.RatingMin = &rating
	}

	f.Materials = splitCSV(q.Materials)
	f.Colors = splitCSV(q.Colors)
	f.Sizes = splitCSV(q.Sizes)
	f.Tags = splitCSV(q.Tags)

	return f, nil
}

// ProductHandler handles HTTP requests for catalog products
type ProductHandler struct {
	catalogService service.CatalogService
	defaultPerPage int
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, defaultPerPage int, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		defaultPerPage: defaultPerPage,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{slug}", h.GetProduct)
	})
}

// ListProducts handles the filtered, sorted and paginated catalog listing
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := parseListProductsQuery(r)
	if !validateQuery(w, q) {
		return
	}

	page, perPage, err := q.resolve(h.defaultPerPage)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to list products")
		return
	}

	filter, err := q.filter()
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to list products")
		return
	}

	result, err := h.catalogService.ListProducts(r.Context(), service.ListProductsParams{
		Filter:  filter,
		Sort:    domain.ProductSort(q.Sort).OrDefault(),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// GetProduct handles the product detail page lookup by slug
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, found, err := h.catalogService.GetProductBySlug(r.Context(), slug)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to load product")
		return
	}
	if !found {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
