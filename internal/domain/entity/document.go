package entity

import "time"

// DocumentType identifica la variante de documento (también se usa como entity_type en auditoría).
type DocumentType string

const (
	DocumentReceipt    DocumentType = "receipt"
	DocumentDelivery   DocumentType = "delivery"
	DocumentDisposal   DocumentType = "disposal"
	DocumentReturn     DocumentType = "return"
	DocumentStocktake  DocumentType = "stocktake"
	DocumentAdjustment DocumentType = "adjustment"
)

// DocumentHeader campos comunes a todos los documentos.
type DocumentHeader struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"` // legible, único por tipo
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocID devuelve el ID del documento.
func (h DocumentHeader) DocID() string { return h.ID }

// DocCode devuelve el código legible del documento.
func (h DocumentHeader) DocCode() string { return h.Code }

// DocHeader devuelve la cabecera completa.
func (h DocumentHeader) DocHeader() DocumentHeader { return h }

// Document es el contrato que cumplen todas las variantes (usado por los repositorios genéricos).
type Document interface {
	DocID() string
	DocCode() string
	DocType() DocumentType
	DocStatus() string
	DocHeader() DocumentHeader
}
