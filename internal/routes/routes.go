package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/souk-intel/service-bestsellers/internal/handlers"
	"github.com/souk-intel/service-bestsellers/internal/middleware"
)

// RouteConfig holds configuration for routes
type RouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
	SessionHandler   *handlers.SessionHandler
	AdminHandler     *handlers.AdminHandler
	JWTManager       *middleware.JWTManager
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouteConfig) {
	// API v1 routes
	v1 := router.Group("/api/v1")

	// Dashboard routes (public)
	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/regions", cfg.DashboardHandler.GetRegions)
		dashboard.GET("/categories", cfg.DashboardHandler.GetCategories)
		dashboard.GET("/categories/:category/products", cfg.DashboardHandler.GetCategoryProducts)

		// Session state
		dashboard.POST("/sessions", cfg.SessionHandler.CreateSession)
		dashboard.GET("/sessions/:id", cfg.SessionHandler.GetSession)
		dashboard.PUT("/sessions/:id/selection", cfg.SessionHandler.SelectCategory)
	}

	// Admin dataset routes (require authentication and admin role)
	admin := v1.Group("/admin/dataset")
	admin.Use(middleware.AuthMiddleware(cfg.JWTManager))
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/reload", cfg.AdminHandler.ReloadDataset)
		admin.GET("/status", cfg.AdminHandler.GetDatasetStatus)
	}
}
