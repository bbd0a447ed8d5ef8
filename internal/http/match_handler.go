package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate-match/internal/domain"
	"estate-match/internal/repository"
	"estate-match/internal/service"
)

// Matcher es lo que el handler necesita del servicio de matching.
type Matcher interface {
	PropertiesForClient(ctx context.Context, clientID, profileName string, opts service.MatchOptions) ([]domain.MatchResult, error)
	ClientsForProperty(ctx context.Context, propertyID, profileName string, opts service.MatchOptions) ([]domain.MatchResult, error)
}

// MatchHandler mantiene dependencias para los endpoints de matching.
type MatchHandler struct {
	logger  *zap.Logger
	matcher Matcher
	clients repository.ClientRepository
	alerts  *service.MatchAlertService
}

func NewMatchHandler(logger *zap.Logger, matcher Matcher, clients repository.ClientRepository, alerts *service.MatchAlertService) *MatchHandler {
	return &MatchHandler{
		logger:  logger,
		matcher: matcher,
		clients: clients,
		alerts:  alerts,
	}
}

// matchItem adjunta a cada resultado la vista de explicacion para la UI.
type matchItem struct {
	domain.MatchResult
	TopFactors []domain.CriterionScore `json:"top_factors,omitempty"`
}

// PropertiesForClient maneja GET /matching/clients/:id/properties.
func (h *MatchHandler) PropertiesForClient(c *gin.Context) {
	opts, profileName, notify, ok := h.parseQuery(c)
	if !ok {
		return
	}
	clientID := c.Param("id")

	results, err := h.matcher.PropertiesForClient(c.Request.Context(), clientID, profileName, opts)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}

	if notify && h.alerts != nil {
		h.notifyAgent(c, clientID, results)
	}

	c.JSON(http.StatusOK, gin.H{
		"anchor_id": clientID,
		"count":     len(results),
		"results":   buildMatchItems(results, opts.IncludeBreakdown),
	})
}

// ClientsForProperty maneja GET /matching/properties/:id/clients.
func (h *MatchHandler) ClientsForProperty(c *gin.Context) {
	opts, profileName, _, ok := h.parseQuery(c)
	if !ok {
		return
	}
	propertyID := c.Param("id")

	results, err := h.matcher.ClientsForProperty(c.Request.Context(), propertyID, profileName, opts)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"anchor_id": propertyID,
		"count":     len(results),
		"results":   buildMatchItems(results, opts.IncludeBreakdown),
	})
}

func (h *MatchHandler) parseQuery(c *gin.Context) (service.MatchOptions, string, bool, bool) {
	opts := service.DefaultMatchOptions()

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return opts, "", false, false
		}
		opts.Limit = limit
	}
	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_score must be a number"})
			return opts, "", false, false
		}
		opts.MinScore = minScore
	}
	if raw := c.Query("breakdown"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "breakdown must be a boolean"})
			return opts, "", false, false
		}
		opts.IncludeBreakdown = include
	}

	notify := false
	if raw := c.Query("notify"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "notify must be a boolean"})
			return opts, "", false, false
		}
		notify = parsed
	}

	return opts, c.Query("profile"), notify, true
}

func (h *MatchHandler) writeMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
	case errors.Is(err, service.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown weight profile"})
	case errors.Is(err, service.ErrInvalidMinScore),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, service.ErrUnknownCriterion),
		errors.Is(err, service.ErrNegativeWeight):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("matching failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute matches"})
	}
}

func (h *MatchHandler) notifyAgent(c *gin.Context, clientID string, results []domain.MatchResult) {
	claims, ok := GetAuthClaims(c)
	if !ok || claims.Email == "" {
		return
	}
	client, err := h.clients.GetByID(c.Request.Context(), clientID)
	if err != nil {
		return
	}
	if err := h.alerts.SendMatchDigest(c.Request.Context(), claims.Email, client.FullName, results); err != nil {
		h.logger.Warn("match digest not sent", zap.Error(err))
	}
}

func buildMatchItems(results []domain.MatchResult, includeBreakdown bool) []matchItem {
	items := make([]matchItem, len(results))
	for i, res := range results {
		items[i] = matchItem{MatchResult: res}
		if includeBreakdown {
			items[i].TopFactors = service.TopContributions(res, 5)
		}
	}
	return items
}
