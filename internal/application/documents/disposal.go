package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/domain/workflow"
)

// DisposalInput datos editables de una baja. Value en cero se calcula como qty * priceIn.
type DisposalInput struct {
	Code         string                `json:"code"`
	Reason       entity.DisposalReason `json:"reason"`
	Date         time.Time             `json:"date"`
	Notes        string                `json:"notes"`
	Lines        []entity.DisposalLine `json:"lines"`
	BoardMembers []string              `json:"board_members"`
	MinutesRef   string                `json:"minutes_ref"`
}

// DisposalService bajas de inventario. Por encima del umbral exigen junta y acta para aprobarse.
type DisposalService struct {
	*Service[entity.Disposal, entity.DisposalStatus, DisposalInput]
}

func newDisposalService(e *engine) *DisposalService {
	return &DisposalService{&Service[entity.Disposal, entity.DisposalStatus, DisposalInput]{e: e, k: kind[entity.Disposal, entity.DisposalStatus, DisposalInput]{
		typ:       entity.DocumentDisposal,
		table:     workflow.Disposal,
		repo:      func(r repository.Repositories) repository.DocumentRepository[entity.Disposal] { return r.Disposals },
		header:    func(d *entity.Disposal) *entity.DocumentHeader { return &d.DocumentHeader },
		status:    func(d *entity.Disposal) entity.DisposalStatus { return d.Status },
		setStatus: func(d *entity.Disposal, s entity.DisposalStatus) { d.Status = s },
		apply: func(ctx context.Context, repos repository.Repositories, in DisposalInput, d *entity.Disposal) error {
			if !in.Reason.Valid() {
				return domain.Invalid("reason", fmt.Sprintf("%q no es expired, damaged ni lost", in.Reason))
			}
			if err := requireLines(len(in.Lines)); err != nil {
				return err
			}
			lines := make([]entity.DisposalLine, len(in.Lines))
			for i, l := range in.Lines {
				p, err := requireProduct(ctx, repos, i, l.ProductID)
				if err != nil {
					return err
				}
				if err := requirePositive(i, l.Quantity); err != nil {
					return err
				}
				if err := requireBin(ctx, repos, i, l.LocationID); err != nil {
					return err
				}
				if l.Value.IsNegative() {
					return domain.Invalid(lineField(i, "value"), "no puede ser negativo")
				}
				if l.Value.IsZero() {
					l.Value = domaininv.LineValue(l.Quantity, p.PriceIn)
				}
				lines[i] = l
			}
			d.Code = in.Code
			d.Notes = in.Notes
			d.Reason = in.Reason
			d.Date = dateOr(in.Date, e.now())
			d.Lines = lines
			d.TotalValue = domaininv.TotalValue(lines)
			d.BoardRequired = e.boardRequired(d.TotalValue)
			d.BoardMembers = cleanMembers(in.BoardMembers)
			d.MinutesRef = strings.TrimSpace(in.MinutesRef)
			return nil
		},
		effect: func(ctx context.Context, repos repository.Repositories, actor string, d *entity.Disposal, to entity.DisposalStatus) error {
			switch to {
			case entity.DisposalApproved:
				if d.BoardRequired && !d.HasBoardApproval() {
					return fmt.Errorf("baja %s por %s supera el umbral %s y no tiene junta ni acta: %w",
						d.Code, d.TotalValue, e.cfg.DisposalBoardThreshold, domain.ErrApprovalRequirementsNotMet)
				}
			case entity.DisposalCompleted:
				return drawDown(ctx, e, repos, actor, entity.DocumentDisposal, d.ID, disposalRequirements(d))
			}
			return nil
		},
	}}}
}

// RecordBoardApproval registra los miembros de junta y la referencia al acta (solo en borrador).
func (s *DisposalService) RecordBoardApproval(ctx context.Context, actor, id string, members []string, minutesRef string) (*entity.Disposal, error) {
	members = cleanMembers(members)
	minutesRef = strings.TrimSpace(minutesRef)
	if len(members) == 0 {
		return nil, domain.Invalid("board_members", "debe indicar al menos un miembro")
	}
	if minutesRef == "" {
		return nil, domain.Invalid("minutes_ref", "requerido")
	}
	return s.mutateDraft(ctx, actor, id, audit.ActionUpdated, func(_ context.Context, _ repository.Repositories, d *entity.Disposal) (map[string]any, error) {
		d.BoardMembers = members
		d.MinutesRef = minutesRef
		return map[string]any{"board_members": members, "minutes_ref": minutesRef}, nil
	})
}

func cleanMembers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func disposalRequirements(d *entity.Disposal) []inventory.StockRequirement {
	reqs := make([]inventory.StockRequirement, 0, len(d.Lines))
	for _, l := range d.Lines {
		reqs = append(reqs, inventory.StockRequirement{
			Key:      entity.StockKey{ProductID: l.ProductID, LocationID: l.LocationID, Batch: l.Batch},
			Quantity: l.Quantity,
		})
	}
	return reqs
}

// drawDown verifica todas las claves y luego descuenta cada una.
func drawDown(ctx context.Context, e *engine, repos repository.Repositories, actor string, typ entity.DocumentType, id string, reqs []inventory.StockRequirement) error {
	if err := e.ledger.EnsureStock(ctx, repos, reqs); err != nil {
		return err
	}
	cmds := make([]inventory.AdjustCmd, 0, len(reqs))
	for _, r := range reqs {
		cmds = append(cmds, inventory.AdjustCmd{
			Key:       r.Key,
			Delta:     -r.Quantity,
			Reference: inventory.Reference{Type: typ, ID: id},
			Actor:     actor,
		})
	}
	return e.ledger.AdjustAll(ctx, repos, cmds)
}
