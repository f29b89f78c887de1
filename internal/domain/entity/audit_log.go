package entity

import "time"

// AuditLogEntry registro inmutable de una operación que modificó estado.
// Actor nil = acción del sistema.
type AuditLogEntry struct {
	ID         string         `json:"id"`
	Actor      *string        `json:"actor"`
	Action     string         `json:"action"` // p.ej. "receipt.transitioned"
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
