package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/dataset"
	"github.com/souk-intel/service-bestsellers/internal/models"
	"github.com/souk-intel/service-bestsellers/internal/services"
	"github.com/souk-intel/service-bestsellers/internal/store"
)

// DashboardHandler handles the dashboard query endpoints
type DashboardHandler struct {
	service  *services.DashboardService
	sessions *services.SessionService
	logger   *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *services.DashboardService, sessions *services.SessionService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

// GetRegions returns the offered region choices
// @Summary List available regions
// @Tags Dashboard
// @Success 200 {array} models.RegionChoice
// @Router /dashboard/regions [get]
func (h *DashboardHandler) GetRegions(c *gin.Context) {
	regions, err := h.service.Regions(c.Request.Context())
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

// GetCategories returns the filtered, ordered category board
// @Summary Get the category board
// @Tags Dashboard
// @Param region query string false "Region label (UAE, KSA)"
// @Param min_products query int false "Minimum products per category"
// @Param min_sales query int false "Minimum total sales per category"
// @Param sort query string false "total_sales or total_reviews"
// @Success 200 {object} services.CategoryBoard
// @Router /dashboard/categories [get]
func (h *DashboardHandler) GetCategories(c *gin.Context) {
	board, err := h.service.CategoryBoard(c.Request.Context(), services.CategoryQuery{
		RegionLabel: c.Query("region"),
		Filter:      parseCategoryFilter(c),
	})
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// GetCategoryProducts returns the product detail listing for a category
// @Summary Get category products
// @Tags Dashboard
// @Param category path string true "Category name"
// @Param region query string false "Region label (UAE, KSA)"
// @Param session_id query string false "Dashboard session ID"
// @Success 200 {object} services.ProductListing
// @Router /dashboard/categories/{category}/products [get]
func (h *DashboardHandler) GetCategoryProducts(c *gin.Context) {
	var session *models.Session
	if sessionID := c.Query("session_id"); sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
			return
		}
		session, err = h.sessions.Get(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
	}

	listing, err := h.service.Products(c.Request.Context(), services.ProductQuery{
		RegionLabel: c.Query("region"),
		Category:    c.Param("category"),
		Filter:      parseCategoryFilter(c),
		Session:     session,
	})
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	if listing.Empty {
		c.JSON(http.StatusOK, gin.H{
			"message": "No categories match the current filters",
			"listing": listing,
		})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// parseCategoryFilter reads the threshold and sort query parameters.
// Malformed numbers fall back to 0, matching the loader's coercion stance.
func parseCategoryFilter(c *gin.Context) models.CategoryFilter {
	filter := models.CategoryFilter{Sort: models.ParseSortMode(c.Query("sort"))}
	if v, err := strconv.Atoi(c.Query("min_products")); err == nil && v > 0 {
		filter.MinProductCount = v
	}
	if v, err := strconv.Atoi(c.Query("min_sales")); err == nil && v > 0 {
		filter.MinTotalSales = v
	}
	return filter
}

// respondPipelineError maps pipeline failures onto HTTP statuses. A schema
// error is unrecoverable: the dataset must be re-exported with a category
// column.
func (h *DashboardHandler) respondPipelineError(c *gin.Context, err error) {
	var schemaErr *dataset.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		h.logger.Error("Dataset schema invalid", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": schemaErr.Error()})
	case errors.Is(err, store.ErrNoImport):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dataset has not been imported yet"})
	case errors.Is(err, services.ErrUnknownRegion):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Dashboard query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query dashboard"})
	}
}
