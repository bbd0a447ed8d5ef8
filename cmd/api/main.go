package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"estate-match/internal/config"
	"estate-match/internal/db"
	"estate-match/internal/email"
	apihttp "estate-match/internal/http"
	"estate-match/internal/repository"
	"estate-match/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	agentRepo := repository.NewPgAgentRepository(pool)
	clientRepo := repository.NewPgClientRepository(pool)
	propertyRepo := repository.NewPgPropertyRepository(pool)

	engine := service.NewMatchEngine()
	profiles := service.NewMemoryWeightProfileStore()
	cache := service.NewMemoryMatchCache()
	var (
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			profiles = service.NewRedisWeightProfileStore(redisClient)
			cache = service.NewRedisMatchCache(redisClient)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	if cfg.WeightProfilePath != "" {
		profile, err := service.LoadWeightProfileFromFile(cfg.WeightProfilePath)
		if err != nil {
			logger.Warn("weight profile load failed, using default", zap.Error(err))
		} else if err := profiles.Put(ctx, profile); err != nil {
			logger.Warn("weight profile store failed", zap.Error(err))
		}
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	agentSvc := service.NewAgentService(logger, agentRepo, jwtSvc)
	matchSvc := service.NewMatchService(
		logger,
		clientRepo,
		propertyRepo,
		engine,
		profiles,
		cache,
		time.Duration(cfg.MatchCacheTTLSeconds)*time.Second,
	)
	alertSvc := service.NewMatchAlertService(logger, emailSender)

	authHandler := apihttp.NewAuthHandler(logger, agentSvc)
	clientHandler := apihttp.NewClientHandler(logger, clientRepo)
	propertyHandler := apihttp.NewPropertyHandler(logger, propertyRepo)
	matchHandler := apihttp.NewMatchHandler(logger, matchSvc, clientRepo, alertSvc)
	healthHandler := apihttp.NewHealthHandler(logger, pool)
	router := apihttp.NewRouter(logger, jwtSvc, authHandler, clientHandler, propertyHandler, matchHandler, healthHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
