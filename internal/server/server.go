package server

import (
	"fmt"
	"net/http"

	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/database"
	custommiddleware "handcrafted-haven/internal/middleware"
	"handcrafted-haven/internal/repository"
	"handcrafted-haven/internal/service"
	"handcrafted-haven/internal/transport"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers onto one router.
// redisClient may be nil, in which case rate limiting is disabled.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      s.routes(),
		IdleTimeout:  cfg.Server.IdleTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.LoggingMiddleware(s.logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(s.logger))
	router.Use(custommiddleware.CORSMiddleware(s.config.CORS.AllowedOrigins, s.config.Server.IsDevelopment()))

	router.Get("/health", s.health)

	// Initialize repositories
	pool := s.db.DB()
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	artisanRepo := repository.NewArtisanRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, categoryRepo, s.config.Catalog.MaxPerPage)
	artisanService := service.NewArtisanService(artisanRepo)
	reviewService := service.NewReviewService(reviewRepo, s.config.Catalog.MaxPerPage)

	// Register routes
	router.Group(func(r chi.Router) {
		if s.redis != nil {
			r.Use(custommiddleware.RateLimitMiddleware(s.redis, custommiddleware.RateLimitConfig{
				RequestsPerWindow: s.config.RateLimit.Requests,
				Window:            s.config.RateLimit.Window,
				KeyPrefix:         "catalog_rate_limit",
			}, s.logger))
		}

		transport.NewProductHandler(catalogService, s.config.Catalog.DefaultPerPage, s.logger).RegisterRoutes(r)
		transport.NewCategoryHandler(catalogService, s.logger).RegisterRoutes(r)
		transport.NewArtisanHandler(artisanService, s.logger).RegisterRoutes(r)
		transport.NewReviewHandler(reviewService, s.config.Catalog.DefaultReviewsPerPage, s.logger).RegisterRoutes(r)
	})

	return router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	dbHealth := s.db.Health(r.Context())

	// Driver errors name hosts and ports; they go to the log only
	public := make(map[string]string, len(dbHealth))
	for k, v := range dbHealth {
		if k != "error" {
			public[k] = v
		}
	}

	status := http.StatusOK
	body := map[string]interface{}{
		"status":   "ok",
		"database": public,
	}
	if dbHealth["status"] != "up" {
		s.logger.Warn("Database health check failed",
			zap.String("error", dbHealth["error"]),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}

	custommiddleware.RespondWithJSON(w, status, body)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
