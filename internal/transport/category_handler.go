package transport

import (
	"net/http"

	"handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(catalogService service.CatalogService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/{slug}", h.GetCategory)
	})
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, found, err := h.catalogService.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to load category")
		return
	}
	if !found {
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}
