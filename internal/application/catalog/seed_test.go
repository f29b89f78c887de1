package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/catalog"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memory"
)

const seedJSON = `{
  "locations": [
    {"id": "site", "code": "S1", "name": "Principal", "kind": "site"},
    {"id": "bin", "parent_id": "site", "code": "S1-A", "name": "A", "kind": "bin", "is_default": true}
  ],
  "partners": [
    {"code": "SYSTEM", "name": "Sistema", "kind": "internal"},
    {"code": "PROV-1", "name": "Proveedor", "kind": "supplier"}
  ],
  "products": [
    {"sku": "SKU-1", "name": "Tornillo", "price_in": "2.5", "price_out": "4"}
  ]
}`

func TestReadFileYLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o600))

	seed, err := catalog.ReadFile(path)
	require.NoError(t, err)

	s := memory.NewStore()
	counts, err := catalog.Load(context.Background(), s, seed)
	require.NoError(t, err)
	assert.Equal(t, catalog.Counts{Products: 1, Partners: 2, Locations: 2}, counts)

	ctx := context.Background()
	_ = s.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Partners.GetByCode(ctx, "SYSTEM")
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID, "se genera ID cuando el archivo no lo trae")
		assert.False(t, p.CreatedAt.IsZero())

		bin, err := repos.Locations.DefaultBin(ctx)
		require.NoError(t, err)
		assert.Equal(t, "bin", bin.ID)
		return nil
	})
}

func TestReadFile_Errores(t *testing.T) {
	_, err := catalog.ReadFile(filepath.Join(t.TempDir(), "no-existe.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "roto.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = catalog.ReadFile(path)
	assert.Error(t, err)
}

func TestLoad_Validaciones(t *testing.T) {
	cases := []struct {
		name string
		seed catalog.Seed
	}{
		{"kind desconocido", catalog.Seed{Locations: []entity.Location{{Code: "X", Kind: "pasillo"}}}},
		{"ubicación sin código", catalog.Seed{Locations: []entity.Location{{Kind: entity.LocationKindBin}}}},
		{"zona por defecto", catalog.Seed{Locations: []entity.Location{{Code: "Z", Kind: entity.LocationKindZone, IsDefault: true}}}},
		{"tercero sin código", catalog.Seed{Partners: []entity.Partner{{Name: "x"}}}},
		{"producto sin sku", catalog.Seed{Products: []entity.Product{{Name: "x"}}}},
		{"precio negativo", catalog.Seed{Products: []entity.Product{{SKU: "S", PriceIn: decimal.NewFromInt(-1)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.Load(context.Background(), memory.NewStore(), tc.seed)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoad_TodoONada(t *testing.T) {
	s := memory.NewStore()
	seed := catalog.Seed{
		Partners: []entity.Partner{
			{Code: "A", Kind: entity.PartnerKindSupplier},
			{Code: "A", Kind: entity.PartnerKindSupplier},
		},
	}

	_, err := catalog.Load(context.Background(), s, seed)
	require.ErrorIs(t, err, domain.ErrConflict)

	ctx := context.Background()
	_ = s.Run(ctx, func(repos repository.Repositories) error {
		_, err := repos.Partners.GetByCode(ctx, "A")
		assert.ErrorIs(t, err, domain.ErrNotFound, "el primer tercero tampoco debe quedar")
		return nil
	})
}
