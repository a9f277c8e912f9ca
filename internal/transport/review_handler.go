package transport

import (
	"net/http"

	"handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListReviewsQuery represents the review listing query string
type ListReviewsQuery struct {
	pageQuery
	ProductID string `query:"product_id" validate:"required,uuid"`
}

// ReviewHandler handles HTTP requests for product reviews
type ReviewHandler struct {
	reviewService  service.ReviewService
	defaultPerPage int
	logger         *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService service.ReviewService, defaultPerPage int, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  reviewService,
		defaultPerPage: defaultPerPage,
		logger:         logger,
	}
}

// RegisterRoutes registers all review routes
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/reviews", h.ListReviews)
}

// ListReviews handles one page of a product's approved reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q := ListReviewsQuery{
		pageQuery: pageQuery{
			Page:    values.Get("page"),
			PerPage: values.Get("per_page"),
		},
		ProductID: values.Get("product_id"),
	}
	if !validateQuery(w, q) {
		return
	}

	page, perPage, err := q.resolve(h.defaultPerPage)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to list reviews")
		return
	}

	productID, err := uuid.Parse(q.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	reviews, err := h.reviewService.ListReviews(r.Context(), productID, page, perPage)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to list reviews")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}
