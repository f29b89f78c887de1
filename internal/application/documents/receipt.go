package documents

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/domain/workflow"
)

// ReceiptInput datos editables de una recepción.
type ReceiptInput struct {
	Code       string               `json:"code"`
	SupplierID string               `json:"supplier_id"`
	Date       time.Time            `json:"date"`
	Notes      string               `json:"notes"`
	Lines      []entity.ReceiptLine `json:"lines"`
}

// ReceiptService recepciones de proveedor. Al completarse suma cada línea al ledger.
type ReceiptService struct {
	*Service[entity.Receipt, entity.ReceiptStatus, ReceiptInput]
}

func newReceiptService(e *engine) *ReceiptService {
	return &ReceiptService{&Service[entity.Receipt, entity.ReceiptStatus, ReceiptInput]{e: e, k: kind[entity.Receipt, entity.ReceiptStatus, ReceiptInput]{
		typ:       entity.DocumentReceipt,
		table:     workflow.Receipt,
		repo:      func(r repository.Repositories) repository.DocumentRepository[entity.Receipt] { return r.Receipts },
		header:    func(d *entity.Receipt) *entity.DocumentHeader { return &d.DocumentHeader },
		status:    func(d *entity.Receipt) entity.ReceiptStatus { return d.Status },
		setStatus: func(d *entity.Receipt, s entity.ReceiptStatus) { d.Status = s },
		apply: func(ctx context.Context, repos repository.Repositories, in ReceiptInput, d *entity.Receipt) error {
			if err := requirePartner(ctx, repos, "supplier_id", in.SupplierID); err != nil {
				return err
			}
			if err := requireLines(len(in.Lines)); err != nil {
				return err
			}
			for i, l := range in.Lines {
				if _, err := requireProduct(ctx, repos, i, l.ProductID); err != nil {
					return err
				}
				if err := requirePositive(i, l.Quantity); err != nil {
					return err
				}
				if l.PriceIn.IsNegative() {
					return domain.Invalid(lineField(i, "price_in"), "no puede ser negativo")
				}
				if err := optionalBin(ctx, repos, l.LocationID); err != nil {
					return err
				}
			}
			d.Code = in.Code
			d.Notes = in.Notes
			d.SupplierID = in.SupplierID
			d.Date = dateOr(in.Date, e.now())
			d.Lines = in.Lines
			return nil
		},
		effect: func(ctx context.Context, repos repository.Repositories, actor string, d *entity.Receipt, to entity.ReceiptStatus) error {
			if to != entity.ReceiptCompleted {
				return nil
			}
			cmds := make([]inventory.AdjustCmd, 0, len(d.Lines))
			for _, l := range d.Lines {
				bin, err := e.ledger.ResolveBin(ctx, repos, l.LocationID)
				if err != nil {
					return err
				}
				cmds = append(cmds, inventory.AdjustCmd{
					Key:        entity.StockKey{ProductID: l.ProductID, LocationID: bin, Batch: l.Batch},
					Delta:      l.Quantity,
					ExpiryDate: l.ExpiryDate,
					Reference:  inventory.Reference{Type: entity.DocumentReceipt, ID: d.ID},
					Actor:      actor,
				})
			}
			return e.ledger.AdjustAll(ctx, repos, cmds)
		},
	}}}
}
