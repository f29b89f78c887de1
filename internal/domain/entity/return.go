package entity

import "time"

// ReturnStatus estados de una devolución.
type ReturnStatus string

const (
	ReturnDraft     ReturnStatus = "draft"
	ReturnApproved  ReturnStatus = "approved"
	ReturnCompleted ReturnStatus = "completed"
)

// ReturnOrigin de dónde viene (o hacia dónde va) la mercancía devuelta.
type ReturnOrigin string

const (
	ReturnFromCustomer ReturnOrigin = "customer" // entra a bodega
	ReturnToSupplier   ReturnOrigin = "supplier" // sale de bodega
)

// Return devolución de cliente o a proveedor.
type Return struct {
	DocumentHeader
	Origin           ReturnOrigin `json:"origin"`
	PartnerID        string       `json:"partner_id"`
	SourceDocumentID string       `json:"source_document_id,omitempty"` // recepción o despacho original
	DisposalID       string       `json:"disposal_id,omitempty"`        // baja generada automáticamente
	Date             time.Time    `json:"date"`
	Status           ReturnStatus `json:"status"`
	Lines            []ReturnLine `json:"lines"`
}

// ReturnLine línea de devolución. Para devoluciones de cliente LocationID vacío = bin por defecto;
// para devoluciones a proveedor es el bin del que se descuenta.
type ReturnLine struct {
	ProductID  string     `json:"product_id"`
	LocationID string     `json:"location_id,omitempty"`
	Batch      string     `json:"batch,omitempty"`
	Quantity   int64      `json:"quantity"`
	ReasonCode string     `json:"reason_code,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

func (Return) DocType() DocumentType { return DocumentReturn }
func (r Return) DocStatus() string   { return string(r.Status) }
