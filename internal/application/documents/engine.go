// Package documents implementa los casos de uso de los documentos de inventario
// (recepciones, despachos, bajas, devoluciones, conteos y ajustes) y sus máquinas de estado.
// Cada operación corre en una sola transacción: efectos en el ledger, cambio de estado y
// auditoría se confirman juntos o no se confirma nada.
package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// Config reglas de negocio configurables.
type Config struct {
	// DisposalBoardThreshold valor total a partir del cual (estrictamente mayor) una baja exige junta.
	DisposalBoardThreshold decimal.Decimal
	// SystemPartnerCode código del tercero interno contra el que se contabilizan los ajustes.
	SystemPartnerCode string
	// Clock opcional; por defecto time.Now.
	Clock func() time.Time
}

type engine struct {
	tx     inventory.TxRunner
	locker inventory.Locker
	ledger *inventory.Ledger
	cfg    Config
	log    *logger.Logger
	now    func() time.Time

	// adjustments lo usa el conteo al aplicarse para aprobar su ajuste en la misma transacción.
	adjustments *Service[entity.Adjustment, entity.AdjustmentStatus, AdjustmentInput]
}

func (e *engine) lock(ctx context.Context, typ entity.DocumentType, id string) (func(), error) {
	unlock, err := e.locker.Lock(ctx, string(typ)+":"+id)
	if err != nil {
		e.log.WithStr("document_type", string(typ)).Warn().Err(err).Str("document_id", id).
			Msg("no se obtuvo el lock del documento")
		return nil, err
	}
	return unlock, nil
}

func (e *engine) boardRequired(total decimal.Decimal) bool {
	return total.GreaterThan(e.cfg.DisposalBoardThreshold)
}

// Services agrupa los servicios de todos los tipos de documento.
type Services struct {
	Receipts    *ReceiptService
	Deliveries  *DeliveryService
	Disposals   *DisposalService
	Returns     *ReturnService
	Stocktakes  *StocktakeService
	Adjustments *AdjustmentService
}

// NewServices construye los servicios compartiendo runner, locker y ledger.
func NewServices(tx inventory.TxRunner, locker inventory.Locker, ledger *inventory.Ledger, cfg Config, log *logger.Logger) *Services {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	e := &engine{tx: tx, locker: locker, ledger: ledger, cfg: cfg, log: log, now: now}
	return &Services{
		Receipts:    newReceiptService(e),
		Deliveries:  newDeliveryService(e),
		Disposals:   newDisposalService(e),
		Returns:     newReturnService(e),
		Stocktakes:  newStocktakeService(e),
		Adjustments: newAdjustmentService(e),
	}
}
