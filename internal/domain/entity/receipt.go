package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus estados de una recepción de proveedor.
type ReceiptStatus string

const (
	ReceiptDraft             ReceiptStatus = "draft"
	ReceiptApproved          ReceiptStatus = "approved"
	ReceiptSupplierConfirmed ReceiptStatus = "supplierConfirmed"
	ReceiptCompleted         ReceiptStatus = "completed"
)

// Receipt entrada de mercancía desde un proveedor.
type Receipt struct {
	DocumentHeader
	SupplierID string        `json:"supplier_id"`
	Date       time.Time     `json:"date"`
	Status     ReceiptStatus `json:"status"`
	Lines      []ReceiptLine `json:"lines"`
}

// ReceiptLine línea de recepción. LocationID vacío = bin por defecto.
type ReceiptLine struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id,omitempty"`
	Batch      string          `json:"batch,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	Quantity   int64           `json:"quantity"`
	PriceIn    decimal.Decimal `json:"price_in"`
}

func (Receipt) DocType() DocumentType { return DocumentReceipt }
func (r Receipt) DocStatus() string   { return string(r.Status) }
