package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"testimonial-portal-backend/internal/api/handlers"
	"testimonial-portal-backend/internal/api/middleware"
	"testimonial-portal-backend/internal/auth"
	"testimonial-portal-backend/internal/config"
	"testimonial-portal-backend/internal/service"
	"testimonial-portal-backend/internal/store"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(st store.Store, logos *service.LogoStore, mailer service.Mailer, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())

	// Initialize validator
	validate := validator.New()

	// Initialize services
	notifier := service.NewNotifier(mailer, cfg.ModerationEmail, cfg.BaseURL)
	exporter := service.NewExporter(st)
	testimonialService := service.NewTestimonialService(st, logos, notifier, exporter, validate, cfg.BaseURL)

	// The marker-file gate checks the record-store directory; the token gate
	// only activates when a secret is configured.
	gate := auth.NewGate(cfg.DataDir, cfg.AdminJWTSecret)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(st)
	testimonialHandler := handlers.NewTestimonialHandler(testimonialService, gate)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Single action-dispatch endpoint; mutating actions arrive as POSTs,
	// links from emails and listings as GETs.
	router.GET("/testimonials", testimonialHandler.Dispatch)
	router.POST("/testimonials", testimonialHandler.Dispatch)

	return router
}
