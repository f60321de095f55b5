package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/events"
	"github.com/souk-intel/service-bestsellers/internal/services"
	"github.com/souk-intel/service-bestsellers/internal/store"
)

// AdminHandler handles the dataset administration endpoints
type AdminHandler struct {
	service   *services.DashboardService
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewAdminHandler creates a new AdminHandler. publisher may be nil when
// NATS is not configured.
func NewAdminHandler(service *services.DashboardService, publisher *events.Publisher, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service:   service,
		publisher: publisher,
		logger:    logger,
	}
}

// ReloadDataset swaps in the latest import and drops cached summaries
// POST /api/v1/admin/dataset/reload
func (h *AdminHandler) ReloadDataset(c *gin.Context) {
	snap, err := h.service.Reload(c.Request.Context())
	if err != nil {
		if errors.Is(err, store.ErrNoImport) {
			c.JSON(http.StatusConflict, gin.H{"error": "No dataset import to load"})
			return
		}
		h.logger.Error("Failed to reload dataset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload dataset"})
		return
	}

	if h.publisher != nil {
		h.publisher.PublishDatasetReloaded(&events.DatasetReloadedEvent{
			Version:   snap.Version,
			RowCount:  len(snap.Rows),
			Timestamp: time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Dataset reloaded",
		"version":  snap.Version,
		"rows":     len(snap.Rows),
		"imported": snap.ImportedAt,
	})
}

// GetDatasetStatus reports the currently served snapshot
// GET /api/v1/admin/dataset/status
func (h *AdminHandler) GetDatasetStatus(c *gin.Context) {
	snap, err := h.service.DatasetStatus(c.Request.Context())
	if err != nil {
		if errors.Is(err, store.ErrNoImport) {
			c.JSON(http.StatusOK, gin.H{"loaded": false})
			return
		}
		h.logger.Error("Failed to get dataset status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dataset status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loaded":      true,
		"version":     snap.Version,
		"source_file": snap.SourceFile,
		"rows":        len(snap.Rows),
		"imported_at": snap.ImportedAt,
	})
}
