package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// StockRepository define el puerto del ledger de cantidades por clave (producto + bin + lote).
// Una clave sin fila equivale a cantidad 0: Get y GetForUpdate nunca devuelven ErrNotFound.
type StockRepository interface {
	Get(ctx context.Context, key entity.StockKey) (*entity.StockEntry, error)
	// GetForUpdate bloquea la clave hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockEntry, error)
	Upsert(ctx context.Context, entry *entity.StockEntry) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.StockEntry, error)
}
