package routes

import (
	"github.com/gin-gonic/gin"

	"careconnect_web/internal/handlers"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/views"
)

// RegisterRoutes registers every page route, the static assets and the 404 fallback.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.StaticFS("/static", views.Static())

	root := ginRouter.Group("/")
	{
		appHandlers.HealthHandler.RegisterRoutes(root)
		appHandlers.HomeHandler.RegisterRoutes(root)
		appHandlers.AuthHandler.RegisterRoutes(root)
		appHandlers.ProfileHandler.RegisterRoutes(root)
		appHandlers.CareRequestHandler.RegisterRoutes(root)
		appHandlers.ApplicationHandler.RegisterRoutes(root)
		appHandlers.EducationHandler.RegisterRoutes(root)
	}

	ginRouter.NoRoute(appHandlers.HomeHandler.NotFound)
	logger.Debug("Page routes registered", "count", len(ginRouter.Routes()))
}
