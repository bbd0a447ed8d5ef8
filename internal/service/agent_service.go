package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"estate-match/internal/domain"
	"estate-match/internal/repository"
)

var (
	ErrAgentNotFound      = errors.New("agent not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLength = 8

// AgentService coordina el registro y la autenticacion de agentes.
type AgentService struct {
	logger *zap.Logger
	agents repository.AgentRepository
	jwt    *JWTService
}

func NewAgentService(logger *zap.Logger, agents repository.AgentRepository, jwt *JWTService) *AgentService {
	return &AgentService{
		logger: logger,
		agents: agents,
		jwt:    jwt,
	}
}

type RegisterAgentInput struct {
	Email       string
	DisplayName string
	Password    string
}

func (s *AgentService) Register(ctx context.Context, input RegisterAgentInput) (domain.Agent, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Agent{}, errors.New("valid email is required")
	}
	if len(input.Password) < minPasswordLength {
		return domain.Agent{}, errors.New("password too short")
	}

	if _, err := s.agents.GetByEmail(ctx, email); err == nil {
		return domain.Agent{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Agent{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Agent{}, err
	}

	agent := domain.Agent{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		if s.logger != nil {
			s.logger.Error("create agent failed", zap.Error(err))
		}
		return domain.Agent{}, err
	}
	return agent, nil
}

func (s *AgentService) Login(ctx context.Context, email, password string) (domain.Agent, TokenPair, error) {
	agent, err := s.agents.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Agent{}, TokenPair{}, ErrInvalidCredentials
		}
		return domain.Agent{}, TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)) != nil {
		return domain.Agent{}, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.jwt.GeneratePair(agent)
	if err != nil {
		return domain.Agent{}, TokenPair{}, err
	}
	return agent, pair, nil
}

func (s *AgentService) Refresh(_ context.Context, refreshToken string) (TokenPair, error) {
	return s.jwt.RefreshPair(refreshToken)
}
