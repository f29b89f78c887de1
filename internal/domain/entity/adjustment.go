package entity

import "time"

// AdjustmentStatus estados de un ajuste.
type AdjustmentStatus string

const (
	AdjustmentDraft    AdjustmentStatus = "draft"
	AdjustmentApproved AdjustmentStatus = "approved"
)

// AdjustmentReason motivo del ajuste.
type AdjustmentReason string

const (
	AdjustmentLoss       AdjustmentReason = "loss"
	AdjustmentFound      AdjustmentReason = "found"
	AdjustmentCorrection AdjustmentReason = "correction"
)

// Valid indica si el motivo pertenece al enum cerrado.
func (r AdjustmentReason) Valid() bool {
	switch r {
	case AdjustmentLoss, AdjustmentFound, AdjustmentCorrection:
		return true
	}
	return false
}

// Adjustment ajuste manual o generado por conciliación de un conteo.
// Sus deltas solo se aplican al ledger al aprobarlo.
type Adjustment struct {
	DocumentHeader
	Reason      AdjustmentReason `json:"reason"`
	Date        time.Time        `json:"date"`
	Status      AdjustmentStatus `json:"status"`
	Lines       []AdjustmentLine `json:"lines"`
	StocktakeID string           `json:"stocktake_id,omitempty"`
	ApprovedBy  string           `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time       `json:"approved_at,omitempty"`
}

// AdjustmentLine delta con signo (nunca cero) por clave del ledger.
type AdjustmentLine struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Batch      string `json:"batch,omitempty"`
	Delta      int64  `json:"delta"`
}

func (Adjustment) DocType() DocumentType { return DocumentAdjustment }
func (a Adjustment) DocStatus() string   { return string(a.Status) }
