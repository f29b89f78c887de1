package memory

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var (
	_ repository.AuditLogRepository         = auditRepo{}
	_ repository.FinancialPostingRepository = postingRepo{}
)

type auditRepo struct{ s *Store }

func (r auditRepo) Create(_ context.Context, e *entity.AuditLogEntry) error {
	r.s.state.audit = append(r.s.state.audit, *e)
	return nil
}

func (r auditRepo) ListByEntity(_ context.Context, entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error) {
	out := make([]*entity.AuditLogEntry, 0)
	all := r.s.state.audit
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].EntityType != entityType || all[i].EntityID != entityID {
			continue
		}
		e := all[i]
		out = append(out, &e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type postingRepo struct{ s *Store }

func (r postingRepo) Create(_ context.Context, p *entity.FinancialPosting) error {
	r.s.state.postings = append(r.s.state.postings, *p)
	return nil
}

func (r postingRepo) ListByAdjustment(_ context.Context, adjustmentID string) ([]*entity.FinancialPosting, error) {
	out := make([]*entity.FinancialPosting, 0)
	for _, p := range r.s.state.postings {
		if p.AdjustmentID == adjustmentID {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}
