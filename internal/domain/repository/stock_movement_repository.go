package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// StockMovementRepository diario append-only de escrituras del ledger.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByKey más recientes primero; limit <= 0 = sin límite.
	ListByKey(ctx context.Context, key entity.StockKey, limit int) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, refType entity.DocumentType, refID string) ([]*entity.StockMovement, error)
}
