package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus estados de un despacho a cliente.
type DeliveryStatus string

const (
	DeliveryDraft     DeliveryStatus = "draft"
	DeliveryApproved  DeliveryStatus = "approved"
	DeliveryPrepared  DeliveryStatus = "prepared"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCompleted DeliveryStatus = "completed"
)

// Delivery salida de mercancía hacia un cliente.
type Delivery struct {
	DocumentHeader
	CustomerID   string         `json:"customer_id"`
	Date         time.Time      `json:"date"`
	PromisedDate time.Time      `json:"promised_date"` // fecha comprometida de entrega, distinta a Date
	Status       DeliveryStatus `json:"status"`
	Lines        []DeliveryLine `json:"lines"`
}

// DeliveryLine línea de despacho; LocationID es obligatorio (bin del que se descuenta).
type DeliveryLine struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Batch      string          `json:"batch,omitempty"`
	Quantity   int64           `json:"quantity"`
	PriceOut   decimal.Decimal `json:"price_out"`
}

func (Delivery) DocType() DocumentType { return DocumentDelivery }
func (d Delivery) DocStatus() string   { return string(d.Status) }
