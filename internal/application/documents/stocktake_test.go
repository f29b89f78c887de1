package documents_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/documents"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

func count(t *testing.T, f *fixture, code string, lines ...documents.StocktakeLineInput) *entity.Stocktake {
	t.Helper()
	st, err := f.docs.Stocktakes.Create(context.Background(), actor, documents.StocktakeInput{Code: code, Lines: lines})
	require.NoError(t, err)
	return st
}

func TestStocktake_SobranteGeneraAjusteYContabilizacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "REC-1", screw, binA, 10)

	st := count(t, f, "CNT-1", documents.StocktakeLineInput{ProductID: screw, LocationID: binA, CountedQty: 15})
	require.Len(t, st.Lines, 1)
	assert.Equal(t, int64(10), st.Lines[0].SystemQty, "la cantidad del sistema se toma del ledger")

	st, err := f.docs.Stocktakes.Transition(ctx, actor, st.ID, entity.StocktakeApproved)
	require.NoError(t, err)
	require.NotEmpty(t, st.AdjustmentID)
	assert.Equal(t, actor, st.ApprovedBy)
	assert.Equal(t, int64(10), f.qty(t, screw, binA), "aprobar el conteo solo propone")

	adj, err := f.docs.Adjustments.Get(ctx, st.AdjustmentID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentDraft, adj.Status)
	assert.Equal(t, entity.AdjustmentCorrection, adj.Reason)
	assert.Equal(t, st.ID, adj.StocktakeID)
	assert.Equal(t, "ADJ-CNT-1", adj.Code)
	assert.Equal(t, []entity.AdjustmentLine{{ProductID: screw, LocationID: binA, Delta: 5}}, adj.Lines)

	st, err = f.docs.Stocktakes.Transition(ctx, actor, st.ID, entity.StocktakeApplied)
	require.NoError(t, err)
	assert.Equal(t, entity.StocktakeApplied, st.Status)
	assert.Equal(t, int64(15), f.qty(t, screw, binA))

	adj, err = f.docs.Adjustments.Get(ctx, st.AdjustmentID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentApproved, adj.Status)

	postings, err := f.docs.Adjustments.Postings(ctx, adj.ID)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.True(t, decimal.RequireFromString("12.5").Equal(postings[0].Amount), "5 x 2.50, got %s", postings[0].Amount)
	assert.Equal(t, entity.PostingGain, postings[0].Type)
	assert.Equal(t, system, postings[0].PartnerID)
}

func TestStocktake_FaltanteContabilizaPerdida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "REC-1", drill, binB, 5)

	st := count(t, f, "CNT-1", documents.StocktakeLineInput{ProductID: drill, LocationID: binB, CountedQty: 3})
	require.NoError(t, advance(ctx, f.docs.Stocktakes.Transition, st.ID, entity.StocktakeApproved, entity.StocktakeApplied))
	st, err := f.docs.Stocktakes.Get(ctx, st.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), f.qty(t, drill, binB))
	postings, err := f.docs.Adjustments.Postings(ctx, st.AdjustmentID)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.True(t, decimal.NewFromInt(-200).Equal(postings[0].Amount))
	assert.Equal(t, entity.PostingLoss, postings[0].Type)
}

func TestStocktake_SinDiferenciasNoGeneraAjuste(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "REC-1", screw, binA, 10)

	st := count(t, f, "CNT-1", documents.StocktakeLineInput{ProductID: screw, LocationID: binA, CountedQty: 10})
	st, err := f.docs.Stocktakes.Transition(ctx, actor, st.ID, entity.StocktakeApproved)
	require.NoError(t, err)
	assert.Empty(t, st.AdjustmentID)

	_, err = f.docs.Stocktakes.Transition(ctx, actor, st.ID, entity.StocktakeApplied)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStocktake_AjusteYaAprobadoNoSeAplicaDosVeces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "REC-1", screw, binA, 10)

	st := count(t, f, "CNT-1", documents.StocktakeLineInput{ProductID: screw, LocationID: binA, CountedQty: 12})
	st, err := f.docs.Stocktakes.Transition(ctx, actor, st.ID, entity.StocktakeApproved)
	require.NoError(t, err)
	_, err = f.docs.Adjustments.Approve(ctx, actor, st.AdjustmentID)
	require.NoError(t, err)

	_, err = f.docs.Stocktakes.Transition(ctx, actor, st.ID, entity.StocktakeApplied)
	require.NoError(t, err)
	assert.Equal(t, int64(12), f.qty(t, screw, binA))
}

func TestStocktake_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.docs.Stocktakes.Create(ctx, actor, documents.StocktakeInput{Code: "CNT-1", Lines: []documents.StocktakeLineInput{
		{ProductID: screw, LocationID: binA, CountedQty: -1},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.docs.Stocktakes.Create(ctx, actor, documents.StocktakeInput{Code: "CNT-1", Lines: []documents.StocktakeLineInput{
		{ProductID: screw, LocationID: binA, CountedQty: 1},
		{ProductID: screw, LocationID: binA, CountedQty: 2},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "clave repetida")

	_, err = f.docs.Stocktakes.Create(ctx, actor, documents.StocktakeInput{Code: "CNT-1", Lines: []documents.StocktakeLineInput{
		{ProductID: screw, LocationID: zone, CountedQty: 1},
	}})
	assert.ErrorIs(t, err, domain.ErrNotABin)
}

func TestStocktake_EditarTomaNuevaFoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := documents.StocktakeLineInput{ProductID: screw, LocationID: binA, CountedQty: 8}
	st := count(t, f, "CNT-1", line)
	assert.Zero(t, st.Lines[0].SystemQty)

	f.receive(t, "REC-1", screw, binA, 6)
	st, err := f.docs.Stocktakes.Update(ctx, actor, st.ID, documents.StocktakeInput{Code: "CNT-1", Lines: []documents.StocktakeLineInput{line}})
	require.NoError(t, err)
	assert.Equal(t, int64(6), st.Lines[0].SystemQty)
}
