// Package audit escribe y consulta el registro inmutable de operaciones.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// Acciones registradas por cada documento: "<tipo>.<acción>".
const (
	ActionCreated      = "created"
	ActionUpdated      = "updated"
	ActionDeleted      = "deleted"
	ActionTransitioned = "transitioned"
	ActionMoved        = "moved"
)

// Action compone la acción calificada por tipo de entidad.
func Action(entityType, verb string) string {
	return entityType + "." + verb
}

// Write agrega una entrada dentro de la transacción en curso. actor vacío = sistema.
// Debe llamarse después de la mutación que registra, en la misma transacción.
func Write(ctx context.Context, repo repository.AuditLogRepository, actor, entityType, verb, entityID string, payload map[string]any, at time.Time) error {
	entry := &entity.AuditLogEntry{
		ID:         uuid.New().String(),
		Action:     Action(entityType, verb),
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    payload,
		CreatedAt:  at,
	}
	if actor != "" {
		entry.Actor = &actor
	}
	if err := repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("registrar auditoría %s: %w", entry.Action, err)
	}
	return nil
}

// UseCase consultas sobre el registro de auditoría.
type UseCase struct {
	tx repository.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// ListByEntity entradas de una entidad, más recientes primero.
func (uc *UseCase) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error) {
	if entityType == "" || entityID == "" {
		return nil, domain.Invalid("entity", "tipo e id son requeridos")
	}
	var out []*entity.AuditLogEntry
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = repos.Audit.ListByEntity(ctx, entityType, entityID, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
