package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/barter-backend/internal/config"
	"github.com/ignatzorin/barter-backend/internal/http/handlers"
	"github.com/ignatzorin/barter-backend/internal/http/middleware"
	"github.com/ignatzorin/barter-backend/internal/service"
)

// SetupRouter собирает таблицу маршрутов движка обмена.
func SetupRouter(
	cfg *config.Config,
	offerHandler *handlers.OfferHandler,
	vendorHandler *handlers.VendorHandler,
	adminHandler *handlers.AdminHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// WebSocket авторизуется своим token query параметром.
	api.GET("/ws", wsHandler.Handle)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/vendors", vendorHandler.List)

		protected.GET("/offers", offerHandler.List)
		protected.GET("/offers/:id", middleware.UUIDValidator("id"), offerHandler.Get)
		protected.GET("/offers/:id/chain", middleware.UUIDValidator("id"), offerHandler.Chain)

		// Мутации предложений под rate limit.
		mutating := protected.Group("/")
		mutating.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
		{
			mutating.POST("/offers", offerHandler.Create)
			mutating.PUT("/offers/:id", middleware.UUIDValidator("id"), offerHandler.Update)
			mutating.POST("/offers/:id/send", middleware.UUIDValidator("id"), offerHandler.Send)
			mutating.POST("/offers/:id/accept", middleware.UUIDValidator("id"), offerHandler.Accept)
			mutating.POST("/offers/:id/reject", middleware.UUIDValidator("id"), offerHandler.Reject)
			mutating.POST("/offers/:id/cancel", middleware.UUIDValidator("id"), offerHandler.Cancel)
			mutating.POST("/offers/:id/counter", middleware.UUIDValidator("id"), offerHandler.Counter)
			mutating.POST("/offers/:id/fulfill", middleware.UUIDValidator("id"), offerHandler.Fulfill)
			mutating.POST("/offers/:id/dispute", middleware.UUIDValidator("id"), offerHandler.Dispute)
		}
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireAdmin())
	{
		admin.GET("/offers/:id", middleware.UUIDValidator("id"), adminHandler.Inspect)
		admin.POST("/offers/:id/resolve", middleware.UUIDValidator("id"), adminHandler.Resolve)
	}

	return r
}
