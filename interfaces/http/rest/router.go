package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"tastebud/application/commands/bus"
	"tastebud/application/ports"
	querybus "tastebud/application/queries/bus"
	"tastebud/interfaces/http/rest/handlers"
	"tastebud/interfaces/http/rest/middleware"
	"tastebud/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus  *bus.CommandBus
	queryBus    *querybus.QueryBus
	catalog     ports.TrackCatalog
	validator   *auth.JWTValidator
	rateLimiter *auth.DistributedRateLimiter
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	catalog ports.TrackCatalog,
	validator *auth.JWTValidator,
	rateLimiter *auth.DistributedRateLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus:  commandBus,
		queryBus:    queryBus,
		catalog:     catalog,
		validator:   validator,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.tastebud.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.rateLimiter, rt.logger))

		// Comparison and ranking endpoints
		r.Route("/ratings", func(r chi.Router) {
			ratingHandler := handlers.NewRatingHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Get("/comparison_pair", ratingHandler.GetComparisonPair)
			r.Post("/create_comparison", ratingHandler.CreateComparison)
			r.Get("/rankings", ratingHandler.GetRankings)
			r.Get("/stats", ratingHandler.GetStats)
		})

		// Song log endpoints
		r.Route("/song-logs", func(r chi.Router) {
			songLogHandler := handlers.NewSongLogHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Post("/", songLogHandler.CreateSongLog)
			r.Get("/", songLogHandler.ListSongLogs)
			r.Get("/can_log_today", songLogHandler.CanLogToday)
			r.Get("/home_status", songLogHandler.HomeStatus)

			socialHandler := handlers.NewSocialHandler(rt.queryBus, rt.logger)
			r.Get("/social_feed", socialHandler.SocialFeed)
			r.Get("/user_discovery", socialHandler.UserDiscovery)
			r.Get("/similar_users", socialHandler.SimilarUsers)
		})

		// Taste profile endpoints
		r.Route("/profile", func(r chi.Router) {
			profileHandler := handlers.NewProfileHandler(rt.commandBus, rt.logger)
			r.Put("/preferences", profileHandler.UpdatePreferences)
		})

		// Catalog search endpoint
		r.Get("/songs/search", handlers.NewSearchHandler(rt.catalog, rt.logger).Search)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
