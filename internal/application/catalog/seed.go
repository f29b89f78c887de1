// Package catalog carga los catálogos de solo lectura (productos, terceros, ubicaciones).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// Seed contenido de un archivo de catálogo.
type Seed struct {
	Products  []entity.Product  `json:"products"`
	Partners  []entity.Partner  `json:"partners"`
	Locations []entity.Location `json:"locations"`
}

// Counts resumen de una carga.
type Counts struct {
	Products  int `json:"products"`
	Partners  int `json:"partners"`
	Locations int `json:"locations"`
}

// ReadFile lee un Seed en JSON.
func ReadFile(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("leer catálogo: %w", err)
	}
	var s Seed
	if err := json.Unmarshal(raw, &s); err != nil {
		return Seed{}, fmt.Errorf("parsear catálogo %s: %w", path, err)
	}
	return s, nil
}

// Load inserta todo el seed en una única transacción. Las ubicaciones se insertan en el orden
// del archivo, así que los padres deben aparecer antes que sus hijos.
func Load(ctx context.Context, tx repository.TxRunner, seed Seed) (Counts, error) {
	if err := validate(seed); err != nil {
		return Counts{}, err
	}
	now := time.Now()
	err := tx.Run(ctx, func(repos repository.Repositories) error {
		for i := range seed.Locations {
			l := seed.Locations[i]
			if l.ID == "" {
				l.ID = uuid.New().String()
			}
			if l.CreatedAt.IsZero() {
				l.CreatedAt = now
			}
			if err := repos.Locations.Create(ctx, &l); err != nil {
				return fmt.Errorf("ubicación %s: %w", l.Code, err)
			}
		}
		for i := range seed.Partners {
			p := seed.Partners[i]
			if p.ID == "" {
				p.ID = uuid.New().String()
			}
			if p.CreatedAt.IsZero() {
				p.CreatedAt = now
			}
			if err := repos.Partners.Create(ctx, &p); err != nil {
				return fmt.Errorf("tercero %s: %w", p.Code, err)
			}
		}
		for i := range seed.Products {
			p := seed.Products[i]
			if p.ID == "" {
				p.ID = uuid.New().String()
			}
			if p.CreatedAt.IsZero() {
				p.CreatedAt = now
				p.UpdatedAt = now
			}
			if err := repos.Products.Create(ctx, &p); err != nil {
				return fmt.Errorf("producto %s: %w", p.SKU, err)
			}
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	return Counts{Products: len(seed.Products), Partners: len(seed.Partners), Locations: len(seed.Locations)}, nil
}

func validate(seed Seed) error {
	for _, l := range seed.Locations {
		switch l.Kind {
		case entity.LocationKindSite, entity.LocationKindZone, entity.LocationKindBin:
		default:
			return domain.Invalid("locations.kind", fmt.Sprintf("%q no es site, zone ni bin", l.Kind))
		}
		if l.Code == "" {
			return domain.Invalid("locations.code", "requerido")
		}
		if l.IsDefault && l.Kind != entity.LocationKindBin {
			return domain.Invalid("locations.is_default", "solo un bin puede ser el destino por defecto")
		}
	}
	for _, p := range seed.Partners {
		if p.Code == "" {
			return domain.Invalid("partners.code", "requerido")
		}
	}
	for _, p := range seed.Products {
		if p.SKU == "" {
			return domain.Invalid("products.sku", "requerido")
		}
		if p.PriceIn.IsNegative() || p.PriceOut.IsNegative() {
			return domain.Invalid("products.price", "no puede ser negativo")
		}
	}
	return nil
}
