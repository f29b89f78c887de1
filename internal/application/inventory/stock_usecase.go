package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// StockUseCase consultas del ledger y traslados manuales entre bins.
type StockUseCase struct {
	tx     TxRunner
	ledger *Ledger
	log    *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(tx TxRunner, ledger *Ledger, log *logger.Logger) *StockUseCase {
	return &StockUseCase{tx: tx, ledger: ledger, log: log}
}

// Get cantidad de una clave (0 si nunca se escribió).
func (uc *StockUseCase) Get(ctx context.Context, key entity.StockKey) (*entity.StockEntry, error) {
	if key.ProductID == "" || key.LocationID == "" {
		return nil, domain.Invalid("key", "product_id y location_id son requeridos")
	}
	var out *entity.StockEntry
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = repos.Stock.Get(ctx, key)
		return err
	})
	return out, err
}

// ListByProduct entradas de un producto en todas las ubicaciones.
func (uc *StockUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	var out []*entity.StockEntry
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Products.GetByID(ctx, productID); err != nil {
			return err
		}
		var err error
		out, err = repos.Stock.ListByProduct(ctx, productID)
		return err
	})
	return out, err
}

// ListByLocation entradas de un bin.
func (uc *StockUseCase) ListByLocation(ctx context.Context, locationID string) ([]*entity.StockEntry, error) {
	if locationID == "" {
		return nil, domain.Invalid("location_id", "requerido")
	}
	var out []*entity.StockEntry
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Locations.GetByID(ctx, locationID); err != nil {
			return err
		}
		var err error
		out, err = repos.Stock.ListByLocation(ctx, locationID)
		return err
	})
	return out, err
}

// Move traslado manual en su propia transacción, con entrada de auditoría stock.moved.
func (uc *StockUseCase) Move(ctx context.Context, actor string, cmd MoveCmd) error {
	cmd.Actor = actor
	cmd.Reference = Reference{Type: ReferenceStock}
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Products.GetByID(ctx, cmd.ProductID); err != nil {
			return err
		}
		if err := uc.ledger.Move(ctx, repos, cmd); err != nil {
			return err
		}
		uc.log.Debug().
			Str("product_id", cmd.ProductID).
			Str("from", cmd.From).
			Str("to", cmd.To).
			Int64("quantity", cmd.Quantity).
			Msg("traslado de stock")
		return audit.Write(ctx, repos.Audit, actor, string(ReferenceStock), audit.ActionMoved, cmd.ProductID, map[string]any{
			"from":     cmd.From,
			"to":       cmd.To,
			"batch":    cmd.Batch,
			"quantity": cmd.Quantity,
		}, time.Now())
	})
}

// Movements diario de una clave, más recientes primero.
func (uc *StockUseCase) Movements(ctx context.Context, key entity.StockKey, limit int) ([]*entity.StockMovement, error) {
	if key.ProductID == "" || key.LocationID == "" {
		return nil, domain.Invalid("key", "product_id y location_id son requeridos")
	}
	var out []*entity.StockMovement
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = repos.Movements.ListByKey(ctx, key, limit)
		return err
	})
	return out, err
}
