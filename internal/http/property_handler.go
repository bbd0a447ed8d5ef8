package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"estate-match/internal/domain"
	"estate-match/internal/repository"
)

// PropertyHandler mantiene dependencias para los endpoints de anuncios.
type PropertyHandler struct {
	logger     *zap.Logger
	properties repository.PropertyRepository
}

func NewPropertyHandler(logger *zap.Logger, properties repository.PropertyRepository) *PropertyHandler {
	return &PropertyHandler{logger: logger, properties: properties}
}

// CreateProperty maneja POST /properties.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req struct {
		Title      string                   `json:"title" binding:"required"`
		Status     domain.PropertyStatus    `json:"status"`
		Attributes domain.ListingAttributes `json:"attributes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create property request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Status == "" {
		req.Status = domain.PropertyStatusPublished
	}

	claims, _ := GetAuthClaims(c)
	now := time.Now().UTC()
	property := domain.Property{
		ID:         uuid.NewString(),
		AgentID:    claims.AgentID,
		Title:      req.Title,
		Status:     req.Status,
		Attributes: req.Attributes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.properties.Create(c.Request.Context(), property); err != nil {
		h.logger.Error("create property failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create property"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

// GetProperty maneja GET /properties/:id.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	property, err := h.properties.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		h.logger.Error("get property failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}
