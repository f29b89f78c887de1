package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (solo lectura para el ledger).
// PriceIn es el costo unitario usado para valorizar ajustes y bajas.
type Product struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	PriceIn   decimal.Decimal `json:"price_in"`  // costo de compra
	PriceOut  decimal.Decimal `json:"price_out"` // precio de venta
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
