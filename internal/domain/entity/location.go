package entity

import "time"

// Niveles de la jerarquía de bodega.
const (
	LocationKindSite = "site"
	LocationKindZone = "zone"
	LocationKindBin  = "bin" // hoja: único nivel que puede tener stock
)

// Location es un nodo de la jerarquía de bodega (sitio > zona > bin).
type Location struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"` // vacío si es raíz
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	IsDefault bool      `json:"is_default"` // bin por defecto para recepciones/devoluciones sin ubicación
	CreatedAt time.Time `json:"created_at"`
}

// IsBin indica si la ubicación puede almacenar stock.
func (l *Location) IsBin() bool {
	return l != nil && l.Kind == LocationKindBin
}
