package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate-match/internal/domain"
)

// ClientRepository es el proveedor de candidatos del lado cliente.
type ClientRepository interface {
	Create(ctx context.Context, client domain.Client) error
	GetByID(ctx context.Context, id string) (domain.Client, error)
	UpdatePreferences(ctx context.Context, id string, prefs domain.PreferenceProfile) error
	ListCandidates(ctx context.Context) ([]domain.ClientCandidate, error)
}

type PgClientRepository struct {
	pool *pgxpool.Pool
}

func NewPgClientRepository(pool *pgxpool.Pool) *PgClientRepository {
	return &PgClientRepository{pool: pool}
}

func (r *PgClientRepository) Create(ctx context.Context, client domain.Client) error {
	prefs, err := json.Marshal(client.Preferences)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO clients (id, agent_id, full_name, email, phone, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.pool.Exec(ctx, query,
		client.ID,
		client.AgentID,
		client.FullName,
		client.Email,
		client.Phone,
		prefs,
		client.CreatedAt,
		client.UpdatedAt,
	)
	return err
}

func (r *PgClientRepository) GetByID(ctx context.Context, id string) (domain.Client, error) {
	const query = `
		SELECT id, agent_id, full_name, email, phone, preferences, created_at, updated_at
		FROM clients
		WHERE id = $1
	`
	var client domain.Client
	var prefs []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.AgentID,
		&client.FullName,
		&client.Email,
		&client.Phone,
		&prefs,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Client{}, err
	}
	if err != nil {
		return domain.Client{}, err
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &client.Preferences); err != nil {
			return domain.Client{}, err
		}
	}
	return client, nil
}

func (r *PgClientRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.PreferenceProfile) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	const query = `
		UPDATE clients
		SET preferences = $2, updated_at = $3
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, raw, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgClientRepository) ListCandidates(ctx context.Context) ([]domain.ClientCandidate, error) {
	const query = `
		SELECT id, preferences, updated_at
		FROM clients
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.ClientCandidate
	for rows.Next() {
		var c domain.ClientCandidate
		var prefs []byte
		if err := rows.Scan(&c.ID, &prefs, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if len(prefs) > 0 {
			if err := json.Unmarshal(prefs, &c.Preferences); err != nil {
				return nil, err
			}
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
