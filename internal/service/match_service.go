package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"estate-match/internal/domain"
	"estate-match/internal/repository"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrPropertyNotFound = errors.New("property not found")
)

// MatchService orquesta una peticion de matching: resuelve ancla y candidatos
// en los repositorios, resuelve el perfil de pesos, invoca el motor y cachea
// el resultado. El motor queda puro; los efectos viven aqui.
type MatchService struct {
	logger     *zap.Logger
	clients    repository.ClientRepository
	properties repository.PropertyRepository
	engine     *MatchEngine
	profiles   WeightProfileStore
	cache      MatchCache
	cacheTTL   time.Duration
}

func NewMatchService(
	logger *zap.Logger,
	clients repository.ClientRepository,
	properties repository.PropertyRepository,
	engine *MatchEngine,
	profiles WeightProfileStore,
	cache MatchCache,
	cacheTTL time.Duration,
) *MatchService {
	if engine == nil {
		engine = NewMatchEngine()
	}
	return &MatchService{
		logger:     logger,
		clients:    clients,
		properties: properties,
		engine:     engine,
		profiles:   profiles,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// PropertiesForClient devuelve los anuncios publicados mejor puntuados para un cliente.
func (s *MatchService) PropertiesForClient(ctx context.Context, clientID, profileName string, opts MatchOptions) ([]domain.MatchResult, error) {
	if err := s.resolveProfile(ctx, profileName, &opts); err != nil {
		return nil, err
	}

	key := matchCacheKey("client->properties", clientID, profileName, opts)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	candidates, err := s.properties.ListPublishedCandidates(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.engine.MatchesForClient(client.ID, client.Preferences, candidates, opts)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, results, clientID, len(candidates))
	return results, nil
}

// ClientsForProperty devuelve los clientes cuyas preferencias mejor encajan con un anuncio.
func (s *MatchService) ClientsForProperty(ctx context.Context, propertyID, profileName string, opts MatchOptions) ([]domain.MatchResult, error) {
	if err := s.resolveProfile(ctx, profileName, &opts); err != nil {
		return nil, err
	}

	key := matchCacheKey("property->clients", propertyID, profileName, opts)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	candidates, err := s.clients.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.engine.MatchesForProperty(property.ID, property.Attributes, candidates, opts)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, results, propertyID, len(candidates))
	return results, nil
}

func (s *MatchService) resolveProfile(ctx context.Context, profileName string, opts *MatchOptions) error {
	if profileName == "" || s.profiles == nil {
		return nil
	}
	profile, err := s.profiles.Get(ctx, profileName)
	if err != nil {
		return err
	}
	opts.WeightProfile = &profile
	return nil
}

func (s *MatchService) store(ctx context.Context, key string, results []domain.MatchResult, anchorID string, candidates int) {
	if s.logger != nil {
		s.logger.Info("match computed",
			zap.String("anchor_id", anchorID),
			zap.Int("candidates", candidates),
			zap.Int("results", len(results)),
		)
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, results, s.cacheTTL)
	}
}
