package catalog

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// UseCase consultas de catálogo e importación de lotes de catálogo.
type UseCase struct {
	tx  repository.TxRunner
	log *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log}
}

// Product devuelve un producto por ID.
func (uc *UseCase) Product(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = repos.Products.GetByID(ctx, id)
		return err
	})
	return out, err
}

// Partner devuelve un tercero por ID.
func (uc *UseCase) Partner(ctx context.Context, id string) (*entity.Partner, error) {
	var out *entity.Partner
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = repos.Partners.GetByID(ctx, id)
		return err
	})
	return out, err
}

// Location devuelve una ubicación por ID.
func (uc *UseCase) Location(ctx context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = repos.Locations.GetByID(ctx, id)
		return err
	})
	return out, err
}

// Import carga un lote de catálogo con las mismas reglas que el seed de arranque.
func (uc *UseCase) Import(ctx context.Context, actor string, seed Seed) (Counts, error) {
	counts, err := Load(ctx, uc.tx, seed)
	if err != nil {
		return Counts{}, err
	}
	uc.log.Info().
		Str("actor", actor).
		Int("products", counts.Products).
		Int("partners", counts.Partners).
		Int("locations", counts.Locations).
		Msg("catálogo importado")
	return counts, nil
}
