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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo jerarquía de bodega sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, parent_id, code, name, kind, is_default, created_at`

// Create persiste una ubicación.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	_, err := r.q.Exec(ctx, `INSERT INTO locations (`+locationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, nullable(l.ParentID), l.Code, l.Name, l.Kind, l.IsDefault, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ubicación %s: %w", l.Code, domain.ErrConflict)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	if !validID(id) {
		return nil, domain.NotFound("ubicación", id)
	}
	l, err := scanLocation(r.q.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("ubicación", id)
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// DefaultBin primer bin marcado como defecto (por código).
func (r *LocationRepo) DefaultBin(ctx context.Context) (*entity.Location, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations
		WHERE is_default AND kind = $1 ORDER BY code LIMIT 1`, entity.LocationKindBin))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("bin por defecto", "")
		}
		return nil, fmt.Errorf("get default bin: %w", err)
	}
	return l, nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	var parentID *string
	if err := row.Scan(&l.ID, &parentID, &l.Code, &l.Name, &l.Kind, &l.IsDefault, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.ParentID = deref(parentID)
	return &l, nil
}
