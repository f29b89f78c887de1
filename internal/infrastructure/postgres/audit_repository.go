package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var (
	_ repository.AuditLogRepository         = (*AuditLogRepo)(nil)
	_ repository.FinancialPostingRepository = (*FinancialPostingRepo)(nil)
)

// AuditLogRepo registro de auditoría append-only sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada.
func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditLogEntry) error {
	var payload []byte
	if e.Payload != nil {
		var err error
		if payload, err = json.Marshal(e.Payload); err != nil {
			return fmt.Errorf("serializar payload de auditoría: %w", err)
		}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_log (id, actor, action, entity_type, entity_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Actor, e.Action, e.EntityType, e.EntityID, payload, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByEntity historial de una entidad, más reciente primero.
func (r *AuditLogRepo) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, actor, action, entity_type, entity_id, payload, created_at
		FROM audit_log WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC, id`
	args := []any{entityType, entityID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.AuditLogEntry, 0)
	for rows.Next() {
		var e entity.AuditLogEntry
		var payload []byte
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.EntityType, &e.EntityID, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Payload); err != nil {
				return nil, fmt.Errorf("deserializar payload de auditoría %s: %w", e.ID, err)
			}
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// FinancialPostingRepo contabilizaciones sobre PostgreSQL.
type FinancialPostingRepo struct {
	q Querier
}

// NewFinancialPostingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinancialPostingRepository(q Querier) *FinancialPostingRepo {
	return &FinancialPostingRepo{q: q}
}

// Create inserta una contabilización.
func (r *FinancialPostingRepo) Create(ctx context.Context, p *entity.FinancialPosting) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO financial_postings (id, partner_id, amount, type, adjustment_id, date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.PartnerID, p.Amount, string(p.Type), p.AdjustmentID, p.Date)
	if err != nil {
		return fmt.Errorf("insert financial posting: %w", err)
	}
	return nil
}

// ListByAdjustment contabilizaciones de un ajuste.
func (r *FinancialPostingRepo) ListByAdjustment(ctx context.Context, adjustmentID string) ([]*entity.FinancialPosting, error) {
	if !validID(adjustmentID) {
		return []*entity.FinancialPosting{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, partner_id, amount, type, adjustment_id, date
		FROM financial_postings WHERE adjustment_id = $1
		ORDER BY date, id`, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list financial postings: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.FinancialPosting, 0)
	for rows.Next() {
		var p entity.FinancialPosting
		var typ string
		if err := rows.Scan(&p.ID, &p.PartnerID, &p.Amount, &typ, &p.AdjustmentID, &p.Date); err != nil {
			return nil, fmt.Errorf("scan financial posting: %w", err)
		}
		p.Type = entity.PostingType(typ)
		out = append(out, &p)
	}
	return out, rows.Err()
}
