package entity

import "time"

// StocktakeStatus estados de un conteo físico.
type StocktakeStatus string

const (
	StocktakeDraft    StocktakeStatus = "draft"
	StocktakeApproved StocktakeStatus = "approved"
	StocktakeApplied  StocktakeStatus = "applied"
)

// Stocktake conteo físico. SystemQty se toma del ledger al crear el documento.
type Stocktake struct {
	DocumentHeader
	Date         time.Time       `json:"date"`
	Status       StocktakeStatus `json:"status"`
	Lines        []StocktakeLine `json:"lines"`
	AdjustmentID string          `json:"adjustment_id,omitempty"`
	ApprovedBy   string          `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
}

// StocktakeLine cantidad del sistema vs. cantidad contada para una clave del ledger.
type StocktakeLine struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Batch      string `json:"batch,omitempty"`
	SystemQty  int64  `json:"system_qty"`
	CountedQty int64  `json:"counted_qty"`
}

func (Stocktake) DocType() DocumentType { return DocumentStocktake }
func (s Stocktake) DocStatus() string   { return string(s.Status) }
