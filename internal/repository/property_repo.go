package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estate-match/internal/domain"
)

// PropertyRepository es el proveedor de candidatos del lado anuncio.
type PropertyRepository interface {
	Create(ctx context.Context, property domain.Property) error
	GetByID(ctx context.Context, id string) (domain.Property, error)
	ListPublishedCandidates(ctx context.Context) ([]domain.PropertyCandidate, error)
}

type PgPropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPgPropertyRepository(pool *pgxpool.Pool) *PgPropertyRepository {
	return &PgPropertyRepository{pool: pool}
}

func (r *PgPropertyRepository) Create(ctx context.Context, property domain.Property) error {
	const query = `
		INSERT INTO properties (
			id, agent_id, title, status,
			price, type, intent, bedrooms, bathrooms, size_sqm, area,
			amenities, has_elevator, pets_allowed, furnishing, condition,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	a := property.Attributes
	_, err := r.pool.Exec(ctx, query,
		property.ID,
		property.AgentID,
		property.Title,
		string(property.Status),
		a.Price,
		string(a.Type),
		string(a.Intent),
		a.Bedrooms,
		a.Bathrooms,
		a.SizeSQM,
		a.Area,
		a.Amenities,
		a.HasElevator,
		a.PetsAllowed,
		string(a.Furnishing),
		string(a.Condition),
		property.CreatedAt,
		property.UpdatedAt,
	)
	return err
}

func (r *PgPropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	const query = `
		SELECT id, agent_id, title, status,
			price, type, intent, bedrooms, bathrooms, size_sqm, area,
			amenities, has_elevator, pets_allowed, furnishing, condition,
			created_at, updated_at
		FROM properties
		WHERE id = $1
	`
	var p domain.Property
	var status, ptype, intent, furnishing, condition string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.AgentID,
		&p.Title,
		&status,
		&p.Attributes.Price,
		&ptype,
		&intent,
		&p.Attributes.Bedrooms,
		&p.Attributes.Bathrooms,
		&p.Attributes.SizeSQM,
		&p.Attributes.Area,
		&p.Attributes.Amenities,
		&p.Attributes.HasElevator,
		&p.Attributes.PetsAllowed,
		&furnishing,
		&condition,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Property{}, err
	}
	if err != nil {
		return domain.Property{}, err
	}
	p.Status = domain.PropertyStatus(status)
	p.Attributes.Type = domain.PropertyType(ptype)
	p.Attributes.Intent = domain.TransactionIntent(intent)
	p.Attributes.Furnishing = domain.FurnishingStatus(furnishing)
	p.Attributes.Condition = domain.PropertyCondition(condition)
	return p, nil
}

func (r *PgPropertyRepository) ListPublishedCandidates(ctx context.Context) ([]domain.PropertyCandidate, error) {
	const query = `
		SELECT id,
			price, type, intent, bedrooms, bathrooms, size_sqm, area,
			amenities, has_elevator, pets_allowed, furnishing, condition,
			updated_at
		FROM properties
		WHERE status = 'published'
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.PropertyCandidate
	for rows.Next() {
		var c domain.PropertyCandidate
		var ptype, intent, furnishing, condition string
		if err := rows.Scan(
			&c.ID,
			&c.Attributes.Price,
			&ptype,
			&intent,
			&c.Attributes.Bedrooms,
			&c.Attributes.Bathrooms,
			&c.Attributes.SizeSQM,
			&c.Attributes.Area,
			&c.Attributes.Amenities,
			&c.Attributes.HasElevator,
			&c.Attributes.PetsAllowed,
			&furnishing,
			&condition,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		c.Attributes.Type = domain.PropertyType(ptype)
		c.Attributes.Intent = domain.TransactionIntent(intent)
		c.Attributes.Furnishing = domain.FurnishingStatus(furnishing)
		c.Attributes.Condition = domain.PropertyCondition(condition)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
