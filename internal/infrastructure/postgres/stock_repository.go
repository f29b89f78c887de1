package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, location_id, batch, quantity, expiry_date, updated_at`

// Get obtiene la cantidad de una clave; sin fila = cantidad 0.
func (r *StockRepo) Get(ctx context.Context, key entity.StockKey) (*entity.StockEntry, error) {
	if !validID(key.ProductID) || !validID(key.LocationID) {
		return &entity.StockEntry{StockKey: key}, nil
	}
	query := `SELECT ` + stockColumns + `
		FROM stock WHERE product_id = $1 AND location_id = $2 AND batch = $3`
	s, err := scanStock(r.q.QueryRow(ctx, query, key.ProductID, key.LocationID, key.Batch))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{StockKey: key}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate crea la fila en 0 si no existe y la bloquea (SELECT FOR UPDATE), así dos
// transacciones sobre una clave nueva también quedan serializadas.
func (r *StockRepo) GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockEntry, error) {
	if !validID(key.ProductID) || !validID(key.LocationID) {
		return &entity.StockEntry{StockKey: key}, nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock (product_id, location_id, batch, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, location_id, batch) DO NOTHING`,
		key.ProductID, key.LocationID, key.Batch)
	if err != nil {
		return nil, fmt.Errorf("reservar fila de stock: %w", err)
	}
	query := `SELECT ` + stockColumns + `
		FROM stock WHERE product_id = $1 AND location_id = $2 AND batch = $3
		FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(ctx, query, key.ProductID, key.LocationID, key.Batch))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza la cantidad de la clave.
func (r *StockRepo) Upsert(ctx context.Context, entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock (product_id, location_id, batch, quantity, expiry_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, location_id, batch)
		DO UPDATE SET quantity = EXCLUDED.quantity, expiry_date = EXCLUDED.expiry_date, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		entry.ProductID, entry.LocationID, entry.Batch, entry.Quantity, entry.ExpiryDate, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByProduct todas las claves con cantidad distinta de cero del producto.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error) {
	if !validID(productID) {
		return []*entity.StockEntry{}, nil
	}
	return r.list(ctx, `WHERE product_id = $1 AND quantity <> 0`, productID)
}

// ListByLocation todas las claves con cantidad distinta de cero del bin.
func (r *StockRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.StockEntry, error) {
	if !validID(locationID) {
		return []*entity.StockEntry{}, nil
	}
	return r.list(ctx, `WHERE location_id = $1 AND quantity <> 0`, locationID)
}

func (r *StockRepo) list(ctx context.Context, where string, arg string) ([]*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock ` + where + `
		ORDER BY product_id, location_id, batch`
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.StockEntry, 0)
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanStock(row pgx.Row) (*entity.StockEntry, error) {
	var s entity.StockEntry
	err := row.Scan(&s.ProductID, &s.LocationID, &s.Batch, &s.Quantity, &s.ExpiryDate, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
