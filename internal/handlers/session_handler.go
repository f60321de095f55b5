package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/services"
)

// SessionHandler handles dashboard session endpoints
type SessionHandler struct {
	sessions *services.SessionService
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *services.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// CreateSession starts a new dashboard session
// POST /api/v1/dashboard/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// GetSession returns a session by ID
// GET /api/v1/dashboard/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectCategoryRequest is the body for a category selection
type SelectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// SelectCategory records the user's category selection
// PUT /api/v1/dashboard/sessions/:id/selection
func (h *SessionHandler) SelectCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var req SelectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category is required"})
		return
	}

	session, err := h.sessions.SelectCategory(id, req.Category)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	h.logger.Debug("Category selected",
		zap.String("session_id", id.String()),
		zap.String("category", req.Category),
	)
	c.JSON(http.StatusOK, gin.H{"session": session})
}
