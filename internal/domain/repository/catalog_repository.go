package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// ProductRepository catálogo de productos. Solo lectura para el ledger; Create se usa al sembrar datos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}

// PartnerRepository catálogo de terceros (proveedores, clientes, socio interno del sistema).
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	GetByCode(ctx context.Context, code string) (*entity.Partner, error)
}

// LocationRepository resuelve la jerarquía de bodega.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// DefaultBin bin marcado como destino por defecto; ErrNotFound si no hay ninguno.
	DefaultBin(ctx context.Context) (*entity.Location, error)
}
