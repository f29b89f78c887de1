package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisposalStatus estados de una baja de inventario.
type DisposalStatus string

const (
	DisposalDraft     DisposalStatus = "draft"
	DisposalApproved  DisposalStatus = "approved"
	DisposalCompleted DisposalStatus = "completed"
)

// DisposalReason motivo de la baja.
type DisposalReason string

const (
	DisposalExpired DisposalReason = "expired"
	DisposalDamaged DisposalReason = "damaged"
	DisposalLost    DisposalReason = "lost"
)

// Valid indica si el motivo pertenece al enum cerrado.
func (r DisposalReason) Valid() bool {
	switch r {
	case DisposalExpired, DisposalDamaged, DisposalLost:
		return true
	}
	return false
}

// Disposal baja de mercancía. Cuando BoardRequired es true, la aprobación exige
// miembros de junta y la referencia al acta.
type Disposal struct {
	DocumentHeader
	Reason         DisposalReason  `json:"reason"`
	Date           time.Time       `json:"date"`
	Status         DisposalStatus  `json:"status"`
	Lines          []DisposalLine  `json:"lines"`
	TotalValue     decimal.Decimal `json:"total_value"` // derivado de las líneas
	BoardRequired  bool            `json:"board_required"`
	BoardMembers   []string        `json:"board_members,omitempty"`
	MinutesRef     string          `json:"minutes_ref,omitempty"`
	SourceReturnID string          `json:"source_return_id,omitempty"` // devolución que la generó, si aplica
}

// DisposalLine línea de baja con su valor monetario total.
type DisposalLine struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Batch      string          `json:"batch,omitempty"`
	Quantity   int64           `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
}

func (Disposal) DocType() DocumentType { return DocumentDisposal }
func (d Disposal) DocStatus() string   { return string(d.Status) }

// HasBoardApproval indica si ya se registraron junta y acta.
func (d *Disposal) HasBoardApproval() bool {
	return len(d.BoardMembers) > 0 && d.MinutesRef != ""
}
