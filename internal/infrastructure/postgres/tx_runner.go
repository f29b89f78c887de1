package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// Ensure TxRunner implements repository.TxRunner.
var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return translateTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// NewRepositories repositorios sobre q (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Stock:       NewStockRepository(q),
		Movements:   NewStockMovementRepository(q),
		Products:    NewProductRepository(q),
		Partners:    NewPartnerRepository(q),
		Locations:   NewLocationRepository(q),
		Receipts:    NewDocumentRepository[entity.Receipt](q),
		Deliveries:  NewDocumentRepository[entity.Delivery](q),
		Disposals:   NewDocumentRepository[entity.Disposal](q),
		Returns:     NewDocumentRepository[entity.Return](q),
		Stocktakes:  NewDocumentRepository[entity.Stocktake](q),
		Adjustments: NewDocumentRepository[entity.Adjustment](q),
		Audit:       NewAuditLogRepository(q),
		Postings:    NewFinancialPostingRepository(q),
	}
}
