package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// AuditLogRepository registro append-only; no existen Update ni Delete.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditLogEntry) error
	// ListByEntity más recientes primero; limit <= 0 = sin límite.
	ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error)
}

// FinancialPostingRepository contabilizaciones generadas por ajustes aprobados.
type FinancialPostingRepository interface {
	Create(ctx context.Context, posting *entity.FinancialPosting) error
	ListByAdjustment(ctx context.Context, adjustmentID string) ([]*entity.FinancialPosting, error)
}
