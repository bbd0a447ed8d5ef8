package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate-match/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	authH *AuthHandler,
	clientH *ClientHandler,
	propertyH *PropertyHandler,
	matchH *MatchHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthH.Healthz)

	auth := r.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Todo el CRM y el matching requieren un agente autenticado.
	api := r.Group("/", JWTAuthMiddleware(jwtSvc))

	clients := api.Group("/clients")
	clients.POST("", clientH.CreateClient)
	clients.GET("/:id", clientH.GetClient)
	clients.PUT("/:id/preferences", clientH.UpdatePreferences)

	properties := api.Group("/properties")
	properties.POST("", propertyH.CreateProperty)
	properties.GET("/:id", propertyH.GetProperty)

	matching := api.Group("/matching")
	matching.GET("/clients/:id/properties", matchH.PropertiesForClient)
	matching.GET("/properties/:id/clients", matchH.ClientsForProperty)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
