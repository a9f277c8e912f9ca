package transport

import (
	"net/http"
	"strconv"

	"handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListArtisansQuery represents the artisan directory query string
type ListArtisansQuery struct {
	Featured string `query:"featured" validate:"omitempty,boolean"`
}

// ArtisanHandler handles HTTP requests for the artisan directory
type ArtisanHandler struct {
	artisanService service.ArtisanService
	logger         *zap.Logger
}

// NewArtisanHandler creates a new ArtisanHandler
func NewArtisanHandler(artisanService service.ArtisanService, logger *zap.Logger) *ArtisanHandler {
	return &ArtisanHandler{
		artisanService: artisanService,
		logger:         logger,
	}
}

// RegisterRoutes registers all artisan routes
func (h *ArtisanHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/artisans", func(r chi.Router) {
		r.Get("/", h.ListArtisans)
		r.Get("/{id}", h.GetArtisan)
	})
}

// ListArtisans handles the directory listing, optionally featured only
func (h *ArtisanHandler) ListArtisans(w http.ResponseWriter, r *http.Request) {
	q := ListArtisansQuery{Featured: r.URL.Query().Get("featured")}
	if !validateQuery(w, q) {
		return
	}

	featuredOnly := false
	if q.Featured != "" {
		featuredOnly, _ = strconv.ParseBool(q.Featured)
	}

	artisans, err := h.artisanService.ListArtisans(r.Context(), featuredOnly)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to list artisans")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, artisans)
}

// GetArtisan handles a single profile lookup with its stats
func (h *ArtisanHandler) GetArtisan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artisan ID")
		return
	}

	artisan, found, err := h.artisanService.GetArtisan(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, h.logger, err, "failed to load artisan")
		return
	}
	if !found {
		middleware.RespondWithError(w, http.StatusNotFound, "artisan not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, artisan)
}
