package entity

import "time"

// StockMovement registra cada escritura exitosa del ledger (diario de movimientos).
// Delta positivo = entrada, negativo = salida; Balance es la cantidad resultante.
type StockMovement struct {
	ID            string       `json:"id"`
	Key           StockKey     `json:"key"`
	Delta         int64        `json:"delta"`
	Balance       int64        `json:"balance"`
	ReferenceType DocumentType `json:"reference_type,omitempty"` // receipt, delivery, ... o "stock" para traslados manuales
	ReferenceID   string       `json:"reference_id,omitempty"`
	CreatedBy     string       `json:"created_by,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}
