package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

func lineField(i int, name string) string {
	return fmt.Sprintf("lines[%d].%s", i, name)
}

func requireLines(n int) error {
	if n == 0 {
		return domain.Invalid("lines", "el documento debe tener al menos una línea")
	}
	return nil
}

func requirePositive(i int, qty int64) error {
	if qty <= 0 {
		return domain.Invalid(lineField(i, "quantity"), "debe ser mayor que cero")
	}
	return nil
}

func requireProduct(ctx context.Context, repos repository.Repositories, i int, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.Invalid(lineField(i, "product_id"), "requerido")
	}
	return repos.Products.GetByID(ctx, id)
}

func requirePartner(ctx context.Context, repos repository.Repositories, field, id string) error {
	if id == "" {
		return domain.Invalid(field, "requerido")
	}
	_, err := repos.Partners.GetByID(ctx, id)
	return err
}

// requireBin exige un bin existente; la ubicación vacía es un error.
func requireBin(ctx context.Context, repos repository.Repositories, i int, id string) error {
	if id == "" {
		return domain.Invalid(lineField(i, "location_id"), "requerido")
	}
	return optionalBin(ctx, repos, id)
}

// optionalBin valida la ubicación solo si viene informada.
func optionalBin(ctx context.Context, repos repository.Repositories, id string) error {
	if id == "" {
		return nil
	}
	loc, err := repos.Locations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !loc.IsBin() {
		return fmt.Errorf("ubicación %s (%s): %w", loc.Code, loc.Kind, domain.ErrNotABin)
	}
	return nil
}

func dateOr(d time.Time, fallback time.Time) time.Time {
	if d.IsZero() {
		return fallback
	}
	return d
}
