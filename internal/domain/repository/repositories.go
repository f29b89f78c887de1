package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Stock     StockRepository
	Movements StockMovementRepository
	Products  ProductRepository
	Partners  PartnerRepository
	Locations LocationRepository

	Receipts    DocumentRepository[entity.Receipt]
	Deliveries  DocumentRepository[entity.Delivery]
	Disposals   DocumentRepository[entity.Disposal]
	Returns     DocumentRepository[entity.Return]
	Stocktakes  DocumentRepository[entity.Stocktake]
	Adjustments DocumentRepository[entity.Adjustment]

	Audit    AuditLogRepository
	Postings FinancialPostingRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura: ledger, documento y auditoría caen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
