package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate-match/internal/domain"
)

type AgentRepository interface {
	Create(ctx context.Context, agent domain.Agent) error
	GetByID(ctx context.Context, id string) (domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (domain.Agent, error)
}

type PgAgentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAgentRepository(pool *pgxpool.Pool) *PgAgentRepository {
	return &PgAgentRepository{pool: pool}
}

func (r *PgAgentRepository) Create(ctx context.Context, agent domain.Agent) error {
	const query = `
		INSERT INTO agents (id, email, display_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		agent.ID,
		agent.Email,
		agent.DisplayName,
		agent.PasswordHash,
		agent.CreatedAt,
	)
	return err
}

func (r *PgAgentRepository) GetByID(ctx context.Context, id string) (domain.Agent, error) {
	const query = `
		SELECT id, email, display_name, password_hash, created_at
		FROM agents
		WHERE id = $1
	`
	return r.scanAgent(r.pool.QueryRow(ctx, query, id))
}

func (r *PgAgentRepository) GetByEmail(ctx context.Context, email string) (domain.Agent, error) {
	const query = `
		SELECT id, email, display_name, password_hash, created_at
		FROM agents
		WHERE lower(email) = lower($1)
	`
	return r.scanAgent(r.pool.QueryRow(ctx, query, email))
}

func (r *PgAgentRepository) scanAgent(row pgx.Row) (domain.Agent, error) {
	var agent domain.Agent
	err := row.Scan(
		&agent.ID,
		&agent.Email,
		&agent.DisplayName,
		&agent.PasswordHash,
		&agent.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Agent{}, err
	}
	return agent, err
}
