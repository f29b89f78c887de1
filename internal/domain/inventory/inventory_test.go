package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/inventory"
)

// ─── Reconcile ────────────────────────────────────────────────────────────────

func TestReconcile_DescartaLineasSinDiferencia(t *testing.T) {
	lines := []entity.StocktakeLine{
		{ProductID: "p1", LocationID: "b1", SystemQty: 10, CountedQty: 15},
		{ProductID: "p2", LocationID: "b1", SystemQty: 7, CountedQty: 7},
		{ProductID: "p3", LocationID: "b2", Batch: "L1", SystemQty: 4, CountedQty: 1},
	}

	got := inventory.Reconcile(lines)

	require.Len(t, got, 2)
	assert.Equal(t, entity.AdjustmentLine{ProductID: "p1", LocationID: "b1", Delta: 5}, got[0])
	assert.Equal(t, entity.AdjustmentLine{ProductID: "p3", LocationID: "b2", Batch: "L1", Delta: -3}, got[1])
}

func TestReconcile_SinDiferenciasDevuelveVacio(t *testing.T) {
	got := inventory.Reconcile([]entity.StocktakeLine{{ProductID: "p1", SystemQty: 3, CountedQty: 3}})
	assert.Empty(t, got)
}

// ─── Valuation ────────────────────────────────────────────────────────────────

func TestValueDelta(t *testing.T) {
	prices := map[string]decimal.Decimal{
		"p1": decimal.RequireFromString("2.50"),
		"p2": decimal.NewFromInt(10),
	}
	lines := []entity.AdjustmentLine{
		{ProductID: "p1", Delta: 4},
		{ProductID: "p2", Delta: -3},
		{ProductID: "sin-precio", Delta: 100},
	}

	got := inventory.ValueDelta(lines, prices)

	assert.True(t, got.Equal(decimal.NewFromInt(-20)), "esperado -20, obtenido %s", got)
	assert.Equal(t, entity.PostingLoss, inventory.PostingTypeFor(got))
	assert.Equal(t, entity.PostingGain, inventory.PostingTypeFor(decimal.NewFromInt(1)))
}

func TestTotalValue(t *testing.T) {
	lines := []entity.DisposalLine{
		{Value: inventory.LineValue(3, decimal.RequireFromString("1.10"))},
		{Value: decimal.NewFromInt(5)},
	}
	assert.True(t, inventory.TotalValue(lines).Equal(decimal.RequireFromString("8.30")))
}

// ─── UniqueCode ───────────────────────────────────────────────────────────────

func TestUniqueCode_AgregaSufijoEnColision(t *testing.T) {
	taken := map[string]bool{"ADJ-ST1": true, "ADJ-ST1-1": true}
	exists := func(_ context.Context, code string) (bool, error) { return taken[code], nil }

	code, err := inventory.UniqueCode(context.Background(), "ADJ-ST1", exists)
	require.NoError(t, err)
	assert.Equal(t, "ADJ-ST1-2", code)

	code, err = inventory.UniqueCode(context.Background(), "ADJ-ST2", exists)
	require.NoError(t, err)
	assert.Equal(t, "ADJ-ST2", code)
}

func TestUniqueCode_PropagaError(t *testing.T) {
	boom := errors.New("db caída")
	_, err := inventory.UniqueCode(context.Background(), "X", func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
