package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/domain/workflow"
)

// AdjustmentInput datos editables de un ajuste manual.
type AdjustmentInput struct {
	Code   string                  `json:"code"`
	Reason entity.AdjustmentReason `json:"reason"`
	Date   time.Time               `json:"date"`
	Notes  string                  `json:"notes"`
	Lines  []entity.AdjustmentLine `json:"lines"`
}

// AdjustmentService ajustes. Aprobar aplica los deltas al ledger y contabiliza la diferencia de valor.
type AdjustmentService struct {
	*Service[entity.Adjustment, entity.AdjustmentStatus, AdjustmentInput]
}

func newAdjustmentService(e *engine) *AdjustmentService {
	s := &AdjustmentService{&Service[entity.Adjustment, entity.AdjustmentStatus, AdjustmentInput]{e: e, k: kind[entity.Adjustment, entity.AdjustmentStatus, AdjustmentInput]{
		typ:       entity.DocumentAdjustment,
		table:     workflow.Adjustment,
		repo:      func(r repository.Repositories) repository.DocumentRepository[entity.Adjustment] { return r.Adjustments },
		header:    func(d *entity.Adjustment) *entity.DocumentHeader { return &d.DocumentHeader },
		status:    func(d *entity.Adjustment) entity.AdjustmentStatus { return d.Status },
		setStatus: func(d *entity.Adjustment, st entity.AdjustmentStatus) { d.Status = st },
		apply: func(ctx context.Context, repos repository.Repositories, in AdjustmentInput, d *entity.Adjustment) error {
			if !in.Reason.Valid() {
				return domain.Invalid("reason", fmt.Sprintf("%q no es loss, found ni correction", in.Reason))
			}
			if err := requireLines(len(in.Lines)); err != nil {
				return err
			}
			for i, l := range in.Lines {
				if _, err := requireProduct(ctx, repos, i, l.ProductID); err != nil {
					return err
				}
				if l.Delta == 0 {
					return domain.Invalid(lineField(i, "delta"), "no puede ser cero")
				}
				if err := requireBin(ctx, repos, i, l.LocationID); err != nil {
					return err
				}
			}
			d.Code = in.Code
			d.Notes = in.Notes
			d.Reason = in.Reason
			d.Date = dateOr(in.Date, e.now())
			d.Lines = in.Lines
			return nil
		},
		guard: func(d *entity.Adjustment, to entity.AdjustmentStatus) error {
			if to == entity.AdjustmentApproved && d.Status == entity.AdjustmentApproved {
				return fmt.Errorf("ajuste %s: %w", d.Code, domain.ErrAlreadyApproved)
			}
			return nil
		},
		effect: func(ctx context.Context, repos repository.Repositories, actor string, d *entity.Adjustment, to entity.AdjustmentStatus) error {
			if to != entity.AdjustmentApproved {
				return nil
			}
			return applyAdjustment(ctx, e, repos, actor, d)
		},
	}}}
	e.adjustments = s.Service
	return s
}

// Approve aprueba el ajuste; un segundo intento falla con domain.ErrAlreadyApproved sin tocar el ledger.
func (s *AdjustmentService) Approve(ctx context.Context, actor, id string) (*entity.Adjustment, error) {
	return s.Transition(ctx, actor, id, entity.AdjustmentApproved)
}

// Postings contabilizaciones generadas por el ajuste.
func (s *AdjustmentService) Postings(ctx context.Context, id string) ([]*entity.FinancialPosting, error) {
	var out []*entity.FinancialPosting
	err := s.e.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Adjustments.Get(ctx, id); err != nil {
			return err
		}
		var err error
		out, err = repos.Postings.ListByAdjustment(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyAdjustment aplica cada delta y contabiliza Σ(delta * priceIn) contra el tercero del sistema.
// La falta de ese tercero solo omite la contabilización.
func applyAdjustment(ctx context.Context, e *engine, repos repository.Repositories, actor string, d *entity.Adjustment) error {
	var reqs []inventory.StockRequirement
	for _, l := range d.Lines {
		if l.Delta < 0 {
			reqs = append(reqs, inventory.StockRequirement{
				Key:      entity.StockKey{ProductID: l.ProductID, LocationID: l.LocationID, Batch: l.Batch},
				Quantity: -l.Delta,
			})
		}
	}
	if len(reqs) > 0 {
		if err := e.ledger.EnsureStock(ctx, repos, reqs); err != nil {
			return err
		}
	}

	cmds := make([]inventory.AdjustCmd, 0, len(d.Lines))
	for _, l := range d.Lines {
		cmds = append(cmds, inventory.AdjustCmd{
			Key:       entity.StockKey{ProductID: l.ProductID, LocationID: l.LocationID, Batch: l.Batch},
			Delta:     l.Delta,
			Reference: inventory.Reference{Type: entity.DocumentAdjustment, ID: d.ID},
			Actor:     actor,
		})
	}
	if err := e.ledger.AdjustAll(ctx, repos, cmds); err != nil {
		return err
	}

	prices := make(map[string]decimal.Decimal, len(d.Lines))
	for _, l := range d.Lines {
		if _, ok := prices[l.ProductID]; ok {
			continue
		}
		p, err := repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return err
		}
		prices[l.ProductID] = p.PriceIn
	}

	now := e.now()
	d.ApprovedBy = actor
	d.ApprovedAt = &now

	value := domaininv.ValueDelta(d.Lines, prices)
	if value.IsZero() {
		return nil
	}
	partner, err := repos.Partners.GetByCode(ctx, e.cfg.SystemPartnerCode)
	if err != nil {
		if !isNotFound(err) {
			return err
		}
		e.log.Warn().
			Str("adjustment_id", d.ID).
			Str("partner_code", e.cfg.SystemPartnerCode).
			Str("value_delta", value.String()).
			Msg("tercero del sistema no encontrado, se omite la contabilización del ajuste")
		return nil
	}
	return repos.Postings.Create(ctx, &entity.FinancialPosting{
		ID:           uuid.New().String(),
		PartnerID:    partner.ID,
		Amount:       value,
		Type:         domaininv.PostingTypeFor(value),
		AdjustmentID: d.ID,
		Date:         now,
	})
}
