package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo diario de movimientos del ledger sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, location_id, batch, delta, balance, reference_type, reference_id, created_by, created_at`

// Create registra un movimiento (append-only).
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Key.ProductID, m.Key.LocationID, m.Key.Batch, m.Delta, m.Balance,
		nullable(string(m.ReferenceType)), nullable(m.ReferenceID), nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByKey movimientos de una clave, más recientes primero.
func (r *StockMovementRepo) ListByKey(ctx context.Context, key entity.StockKey, limit int) ([]*entity.StockMovement, error) {
	if !validID(key.ProductID) || !validID(key.LocationID) {
		return []*entity.StockMovement{}, nil
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1 AND location_id = $2 AND batch = $3
		ORDER BY created_at DESC, id`
	args := []any{key.ProductID, key.LocationID, key.Batch}
	if limit > 0 {
		query += ` LIMIT $4`
		args = append(args, limit)
	}
	return r.list(ctx, query, args...)
}

// ListByReference movimientos generados por un documento, en orden de escritura.
func (r *StockMovementRepo) ListByReference(ctx context.Context, refType entity.DocumentType, refID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at, id`
	return r.list(ctx, query, string(refType), refID)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var refType, refID, createdBy *string
	err := row.Scan(&m.ID, &m.Key.ProductID, &m.Key.LocationID, &m.Key.Batch, &m.Delta, &m.Balance,
		&refType, &refID, &createdBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.ReferenceType = entity.DocumentType(deref(refType))
	m.ReferenceID = deref(refID)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}
