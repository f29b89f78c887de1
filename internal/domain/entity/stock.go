package entity

import "time"

// StockKey identifica una cantidad del ledger: producto + bin (+ lote opcional).
// Batch vacío significa "sin lote".
type StockKey struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Batch      string `json:"batch,omitempty"`
}

// StockEntry representa la cantidad física de una clave del ledger.
// Una entrada inexistente equivale a cantidad 0; Quantity nunca es negativa.
type StockEntry struct {
	StockKey
	Quantity   int64      `json:"quantity"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
