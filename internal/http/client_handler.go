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

// ClientHandler mantiene dependencias para los endpoints de clientes.
type ClientHandler struct {
	logger  *zap.Logger
	clients repository.ClientRepository
}

func NewClientHandler(logger *zap.Logger, clients repository.ClientRepository) *ClientHandler {
	return &ClientHandler{logger: logger, clients: clients}
}

// CreateClient maneja POST /clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req struct {
		FullName    string                   `json:"full_name" binding:"required"`
		Email       string                   `json:"email"`
		Phone       string                   `json:"phone"`
		Preferences domain.PreferenceProfile `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create client request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	claims, _ := GetAuthClaims(c)
	now := time.Now().UTC()
	client := domain.Client{
		ID:          uuid.NewString(),
		AgentID:     claims.AgentID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Preferences: req.Preferences,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.clients.Create(c.Request.Context(), client); err != nil {
		h.logger.Error("create client failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create client"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// GetClient maneja GET /clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		h.logger.Error("get client failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// UpdatePreferences maneja PUT /clients/:id/preferences.
func (h *ClientHandler) UpdatePreferences(c *gin.Context) {
	var prefs domain.PreferenceProfile
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.clients.UpdatePreferences(c.Request.Context(), c.Param("id"), prefs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		h.logger.Error("update preferences failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
