package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo terceros sobre PostgreSQL.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// Create persiste un tercero; el código es único.
func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO partners (id, code, name, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Code, p.Name, p.Kind, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tercero %s: %w", p.Code, domain.ErrConflict)
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero por ID.
func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	if !validID(id) {
		return nil, domain.NotFound("tercero", id)
	}
	return r.get(ctx, "id", id)
}

// GetByCode obtiene un tercero por código.
func (r *PartnerRepo) GetByCode(ctx context.Context, code string) (*entity.Partner, error) {
	return r.get(ctx, "code", code)
}

func (r *PartnerRepo) get(ctx context.Context, column, value string) (*entity.Partner, error) {
	query := `SELECT id, code, name, kind, created_at FROM partners WHERE ` + column + ` = $1`
	var p entity.Partner
	err := r.q.QueryRow(ctx, query, value).Scan(&p.ID, &p.Code, &p.Name, &p.Kind, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("tercero", value)
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return &p, nil
}
