package documents_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/application/catalog"
	"github.com/jhoicas/almacen-ledger/internal/application/documents"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/lock"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

const (
	actor = "usuario-1"

	binA = "bin-a" // bin por defecto
	binB = "bin-b"
	zone = "zona-1"

	screw = "prod-tornillo" // priceIn 2.50
	drill = "prod-taladro"  // priceIn 100

	supplier = "prov-1"
	customer = "cli-1"
	system   = "sys"
)

var today = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	docs  *documents.Services
	stock *inventory.StockUseCase
	audit *audit.UseCase
}

func newFixture(t *testing.T, opts ...func(*documents.Config)) *fixture {
	t.Helper()
	s := memory.NewStore()
	_, err := catalog.Load(context.Background(), s, catalog.Seed{
		Locations: []entity.Location{
			{ID: "site-1", Code: "S1", Name: "Principal", Kind: entity.LocationKindSite},
			{ID: zone, ParentID: "site-1", Code: "S1-Z1", Name: "Zona 1", Kind: entity.LocationKindZone},
			{ID: binA, ParentID: zone, Code: "S1-Z1-A", Name: "Bin A", Kind: entity.LocationKindBin, IsDefault: true},
			{ID: binB, ParentID: zone, Code: "S1-Z1-B", Name: "Bin B", Kind: entity.LocationKindBin},
		},
		Partners: []entity.Partner{
			{ID: system, Code: "SYSTEM", Name: "Sistema", Kind: entity.PartnerKindInternal},
			{ID: supplier, Code: "PROV-1", Name: "Ferretería Mayorista", Kind: entity.PartnerKindSupplier},
			{ID: customer, Code: "CLI-1", Name: "Constructora Andina", Kind: entity.PartnerKindCustomer},
		},
		Products: []entity.Product{
			{ID: screw, SKU: "TOR-01", Name: "Tornillo", PriceIn: decimal.RequireFromString("2.50"), PriceOut: decimal.NewFromInt(4)},
			{ID: drill, SKU: "TAL-01", Name: "Taladro", PriceIn: decimal.NewFromInt(100), PriceOut: decimal.NewFromInt(180)},
		},
	})
	require.NoError(t, err)

	cfg := documents.Config{
		DisposalBoardThreshold: decimal.NewFromInt(10000),
		SystemPartnerCode:      "SYSTEM",
		Clock:                  func() time.Time { return today },
	}
	for _, o := range opts {
		o(&cfg)
	}
	ledger := inventory.NewLedger(logger.Nop())
	return &fixture{
		store: s,
		docs:  documents.NewServices(s, lock.NewKeyedMutex(), ledger, cfg, logger.Nop()),
		stock: inventory.NewStockUseCase(s, ledger, logger.Nop()),
		audit: audit.NewUseCase(s),
	}
}

func (f *fixture) qty(t *testing.T, product, bin string) int64 {
	t.Helper()
	e, err := f.stock.Get(context.Background(), entity.StockKey{ProductID: product, LocationID: bin})
	require.NoError(t, err)
	return e.Quantity
}

func (f *fixture) trail(t *testing.T, typ entity.DocumentType, id string) []*entity.AuditLogEntry {
	t.Helper()
	entries, err := f.audit.ListByEntity(context.Background(), string(typ), id, 0)
	require.NoError(t, err)
	return entries
}

// receive registra una recepción completa de qty unidades en bin.
func (f *fixture) receive(t *testing.T, code, product, bin string, qty int64) *entity.Receipt {
	t.Helper()
	ctx := context.Background()
	r, err := f.docs.Receipts.Create(ctx, actor, documents.ReceiptInput{
		Code:       code,
		SupplierID: supplier,
		Lines:      []entity.ReceiptLine{{ProductID: product, LocationID: bin, Quantity: qty, PriceIn: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	for _, st := range []entity.ReceiptStatus{entity.ReceiptApproved, entity.ReceiptSupplierConfirmed, entity.ReceiptCompleted} {
		r, err = f.docs.Receipts.Transition(ctx, actor, r.ID, st)
		require.NoError(t, err)
	}
	return r
}

func (f *fixture) delivery(t *testing.T, code string, lines ...entity.DeliveryLine) *entity.Delivery {
	t.Helper()
	d, err := f.docs.Deliveries.Create(context.Background(), actor, documents.DeliveryInput{
		Code:       code,
		CustomerID: customer,
		Lines:      lines,
	})
	require.NoError(t, err)
	return d
}

// advance recorre los estados indicados y devuelve el primer error.
func advance[D any, S ~string](ctx context.Context, transition func(context.Context, string, string, S) (*D, error), id string, states ...S) error {
	for _, st := range states {
		if _, err := transition(ctx, actor, id, st); err != nil {
			return err
		}
	}
	return nil
}
