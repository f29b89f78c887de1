package entity

import "time"

// Tipos de tercero.
const (
	PartnerKindSupplier = "supplier"
	PartnerKindCustomer = "customer"
	PartnerKindInternal = "internal" // p.ej. el tercero "sistema" de las contabilizaciones
)

// Partner representa un proveedor, cliente o tercero interno.
type Partner struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"` // único
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
