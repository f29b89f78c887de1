package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/domain/workflow"
)

// StocktakeLineInput línea contada; la cantidad del sistema se toma del ledger.
type StocktakeLineInput struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Batch      string `json:"batch,omitempty"`
	CountedQty int64  `json:"counted_qty"`
}

// StocktakeInput datos editables de un conteo.
type StocktakeInput struct {
	Code  string               `json:"code"`
	Date  time.Time            `json:"date"`
	Notes string               `json:"notes"`
	Lines []StocktakeLineInput `json:"lines"`
}

// StocktakeService conteos físicos. Aprobar genera el ajuste propuesto; aplicar lo aprueba.
type StocktakeService struct {
	*Service[entity.Stocktake, entity.StocktakeStatus, StocktakeInput]
}

func newStocktakeService(e *engine) *StocktakeService {
	s := &StocktakeService{&Service[entity.Stocktake, entity.StocktakeStatus, StocktakeInput]{e: e}}
	s.k = kind[entity.Stocktake, entity.StocktakeStatus, StocktakeInput]{
		typ:       entity.DocumentStocktake,
		table:     workflow.Stocktake,
		repo:      func(r repository.Repositories) repository.DocumentRepository[entity.Stocktake] { return r.Stocktakes },
		header:    func(d *entity.Stocktake) *entity.DocumentHeader { return &d.DocumentHeader },
		status:    func(d *entity.Stocktake) entity.StocktakeStatus { return d.Status },
		setStatus: func(d *entity.Stocktake, st entity.StocktakeStatus) { d.Status = st },
		apply: func(ctx context.Context, repos repository.Repositories, in StocktakeInput, d *entity.Stocktake) error {
			if err := requireLines(len(in.Lines)); err != nil {
				return err
			}
			seen := make(map[entity.StockKey]bool, len(in.Lines))
			lines := make([]entity.StocktakeLine, 0, len(in.Lines))
			for i, l := range in.Lines {
				if _, err := requireProduct(ctx, repos, i, l.ProductID); err != nil {
					return err
				}
				if err := requireBin(ctx, repos, i, l.LocationID); err != nil {
					return err
				}
				if l.CountedQty < 0 {
					return domain.Invalid(lineField(i, "counted_qty"), "no puede ser negativo")
				}
				key := entity.StockKey{ProductID: l.ProductID, LocationID: l.LocationID, Batch: l.Batch}
				if seen[key] {
					return domain.Invalid(lineField(i, "product_id"), "clave repetida en el conteo")
				}
				seen[key] = true
				entry, err := repos.Stock.Get(ctx, key)
				if err != nil {
					return err
				}
				lines = append(lines, entity.StocktakeLine{
					ProductID:  l.ProductID,
					LocationID: l.LocationID,
					Batch:      l.Batch,
					SystemQty:  entry.Quantity,
					CountedQty: l.CountedQty,
				})
			}
			d.Code = in.Code
			d.Notes = in.Notes
			d.Date = dateOr(in.Date, e.now())
			d.Lines = lines
			return nil
		},
		effect: func(ctx context.Context, repos repository.Repositories, actor string, d *entity.Stocktake, to entity.StocktakeStatus) error {
			switch to {
			case entity.StocktakeApproved:
				return proposeAdjustment(ctx, e, repos, actor, d)
			case entity.StocktakeApplied:
				if d.AdjustmentID == "" {
					return fmt.Errorf("conteo %s sin ajuste vinculado, no hay diferencias que aplicar: %w", d.Code, domain.ErrConflict)
				}
				adj, err := repos.Adjustments.GetForUpdate(ctx, d.AdjustmentID)
				if err != nil {
					return err
				}
				if adj.Status == entity.AdjustmentApproved {
					return nil
				}
				return e.adjustments.transitionLoaded(ctx, repos, actor, adj, entity.AdjustmentApproved)
			}
			return nil
		},
	}
	return s
}

// proposeAdjustment concilia el conteo y, si hay diferencias, crea el ajuste en borrador.
func proposeAdjustment(ctx context.Context, e *engine, repos repository.Repositories, actor string, d *entity.Stocktake) error {
	now := e.now()
	d.ApprovedBy = actor
	d.ApprovedAt = &now

	lines := domaininv.Reconcile(d.Lines)
	if len(lines) == 0 {
		return nil
	}
	code, err := domaininv.UniqueCode(ctx, domaininv.AdjustmentCodePrefix+d.Code, repos.Adjustments.CodeExists)
	if err != nil {
		return err
	}
	adj := &entity.Adjustment{
		DocumentHeader: entity.DocumentHeader{
			ID:        uuid.New().String(),
			Code:      code,
			Notes:     fmt.Sprintf("Conciliación del conteo %s", d.Code),
			CreatedBy: actor,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reason:      entity.AdjustmentCorrection,
		Date:        now,
		Status:      entity.AdjustmentDraft,
		Lines:       lines,
		StocktakeID: d.ID,
	}
	if err := repos.Adjustments.Create(ctx, adj); err != nil {
		return err
	}
	if err := audit.Write(ctx, repos.Audit, actor, string(entity.DocumentAdjustment), audit.ActionCreated, adj.ID, map[string]any{
		"code":         adj.Code,
		"status":       string(adj.Status),
		"stocktake_id": d.ID,
	}, now); err != nil {
		return err
	}
	d.AdjustmentID = adj.ID
	return nil
}
