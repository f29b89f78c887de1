package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/domain/workflow"
)

// ReturnInput datos editables de una devolución.
type ReturnInput struct {
	Code             string              `json:"code"`
	Origin           entity.ReturnOrigin `json:"origin"`
	PartnerID        string              `json:"partner_id"`
	SourceDocumentID string              `json:"source_document_id"`
	Date             time.Time           `json:"date"`
	Notes            string              `json:"notes"`
	Lines            []entity.ReturnLine `json:"lines"`
}

// ReturnService devoluciones. Las de cliente entran al ledger y, si traen producto vencido,
// generan una baja vinculada; las a proveedor descuentan stock.
type ReturnService struct {
	*Service[entity.Return, entity.ReturnStatus, ReturnInput]
}

func newReturnService(e *engine) *ReturnService {
	return &ReturnService{&Service[entity.Return, entity.ReturnStatus, ReturnInput]{e: e, k: kind[entity.Return, entity.ReturnStatus, ReturnInput]{
		typ:       entity.DocumentReturn,
		table:     workflow.Return,
		repo:      func(r repository.Repositories) repository.DocumentRepository[entity.Return] { return r.Returns },
		header:    func(d *entity.Return) *entity.DocumentHeader { return &d.DocumentHeader },
		status:    func(d *entity.Return) entity.ReturnStatus { return d.Status },
		setStatus: func(d *entity.Return, s entity.ReturnStatus) { d.Status = s },
		apply: func(ctx context.Context, repos repository.Repositories, in ReturnInput, d *entity.Return) error {
			if in.Origin != entity.ReturnFromCustomer && in.Origin != entity.ReturnToSupplier {
				return domain.Invalid("origin", fmt.Sprintf("%q no es customer ni supplier", in.Origin))
			}
			if err := requirePartner(ctx, repos, "partner_id", in.PartnerID); err != nil {
				return err
			}
			if err := requireSource(ctx, repos, in.Origin, in.SourceDocumentID); err != nil {
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
				var err error
				if in.Origin == entity.ReturnToSupplier {
					err = requireBin(ctx, repos, i, l.LocationID)
				} else {
					err = optionalBin(ctx, repos, l.LocationID)
				}
				if err != nil {
					return err
				}
			}
			d.Code = in.Code
			d.Notes = in.Notes
			d.Origin = in.Origin
			d.PartnerID = in.PartnerID
			d.SourceDocumentID = in.SourceDocumentID
			d.Date = dateOr(in.Date, e.now())
			d.Lines = in.Lines
			return nil
		},
		effect: func(ctx context.Context, repos repository.Repositories, actor string, d *entity.Return, to entity.ReturnStatus) error {
			if to != entity.ReturnCompleted {
				return nil
			}
			if d.Origin == entity.ReturnToSupplier {
				reqs := make([]inventory.StockRequirement, 0, len(d.Lines))
				for _, l := range d.Lines {
					reqs = append(reqs, inventory.StockRequirement{
						Key:      entity.StockKey{ProductID: l.ProductID, LocationID: l.LocationID, Batch: l.Batch},
						Quantity: l.Quantity,
					})
				}
				return drawDown(ctx, e, repos, actor, entity.DocumentReturn, d.ID, reqs)
			}
			return completeCustomerReturn(ctx, e, repos, actor, d)
		},
	}}}
}

// requireSource valida la referencia débil al documento original: un despacho para devoluciones
// de cliente, una recepción para devoluciones a proveedor.
func requireSource(ctx context.Context, repos repository.Repositories, origin entity.ReturnOrigin, id string) error {
	if id == "" {
		return nil
	}
	var err error
	if origin == entity.ReturnFromCustomer {
		_, err = repos.Deliveries.Get(ctx, id)
	} else {
		_, err = repos.Receipts.Get(ctx, id)
	}
	return err
}

// completeCustomerReturn reingresa cada línea y agrupa las vencidas en una baja nueva.
func completeCustomerReturn(ctx context.Context, e *engine, repos repository.Repositories, actor string, d *entity.Return) error {
	now := e.now()
	var expired []entity.DisposalLine
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
			Reference:  inventory.Reference{Type: entity.DocumentReturn, ID: d.ID},
			Actor:      actor,
		})
		if l.ExpiryDate == nil || !l.ExpiryDate.Before(now) {
			continue
		}
		p, err := repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return err
		}
		expired = append(expired, entity.DisposalLine{
			ProductID:  l.ProductID,
			LocationID: bin,
			Batch:      l.Batch,
			Quantity:   l.Quantity,
			Value:      domaininv.LineValue(l.Quantity, p.PriceIn),
		})
	}
	if err := e.ledger.AdjustAll(ctx, repos, cmds); err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}
	disposal, err := spawnExpiredDisposal(ctx, e, repos, actor, d, expired, now)
	if err != nil {
		return err
	}
	d.DisposalID = disposal.ID
	return nil
}

// spawnExpiredDisposal crea la baja por vencimiento. Queda aprobada si no requiere junta;
// si la requiere nace en borrador para que se registren junta y acta.
func spawnExpiredDisposal(ctx context.Context, e *engine, repos repository.Repositories, actor string, ret *entity.Return, lines []entity.DisposalLine, now time.Time) (*entity.Disposal, error) {
	code, err := domaininv.UniqueCode(ctx, domaininv.DisposalCodePrefix+ret.Code, repos.Disposals.CodeExists)
	if err != nil {
		return nil, err
	}
	total := domaininv.TotalValue(lines)
	d := &entity.Disposal{
		DocumentHeader: entity.DocumentHeader{
			ID:        uuid.New().String(),
			Code:      code,
			Notes:     fmt.Sprintf("Generada por la devolución %s", ret.Code),
			CreatedBy: actor,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reason:         entity.DisposalExpired,
		Date:           now,
		Status:         entity.DisposalApproved,
		Lines:          lines,
		TotalValue:     total,
		BoardRequired:  e.boardRequired(total),
		SourceReturnID: ret.ID,
	}
	if d.BoardRequired {
		d.Status = entity.DisposalDraft
	}
	if err := repos.Disposals.Create(ctx, d); err != nil {
		return nil, err
	}
	if err := audit.Write(ctx, repos.Audit, actor, string(entity.DocumentDisposal), audit.ActionCreated, d.ID, map[string]any{
		"code":             d.Code,
		"status":           string(d.Status),
		"source_return_id": ret.ID,
	}, now); err != nil {
		return nil, err
	}
	e.log.Info().Str("return_id", ret.ID).Str("disposal_id", d.ID).Str("status", string(d.Status)).
		Msg("baja por vencimiento generada desde devolución")
	return d, nil
}
