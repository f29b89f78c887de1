package documents_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/documents"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

func receiptInput(code string, qty int64) documents.ReceiptInput {
	return documents.ReceiptInput{
		Code:       code,
		SupplierID: supplier,
		Lines:      []entity.ReceiptLine{{ProductID: screw, LocationID: binB, Quantity: qty}},
	}
}

// ─── Ciclo de vida ────────────────────────────────────────────────────────────

func TestReceipt_SoloCompletarSumaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-1", 100))
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptDraft, r.Status)
	assert.Equal(t, today, r.Date, "sin fecha se toma la del reloj")

	for _, st := range []entity.ReceiptStatus{entity.ReceiptApproved, entity.ReceiptSupplierConfirmed} {
		_, err := f.docs.Receipts.Transition(ctx, actor, r.ID, st)
		require.NoError(t, err)
		assert.Zero(t, f.qty(t, screw, binB), "en %s todavía no hay stock", st)
	}

	r, err = f.docs.Receipts.Transition(ctx, actor, r.ID, entity.ReceiptCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptCompleted, r.Status)
	assert.Equal(t, int64(100), f.qty(t, screw, binB))
}

func TestReceipt_SinUbicacionVaAlBinPorDefecto(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-1", screw, "", 7)
	assert.Equal(t, int64(7), f.qty(t, screw, binA))
}

func TestReceipt_TransicionIlegalNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-1", 10))
	require.NoError(t, err)

	_, err = f.docs.Receipts.Transition(ctx, actor, r.ID, entity.ReceiptCompleted)

	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "draft", te.From)
	assert.Equal(t, "completed", te.To)
	got, err := f.docs.Receipts.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptDraft, got.Status)
	assert.Zero(t, f.qty(t, screw, binB))
}

func TestReceipt_EstadoTerminalYRetroceso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.receive(t, "REC-1", screw, binB, 10)

	_, err := f.docs.Receipts.Transition(ctx, actor, r.ID, entity.ReceiptApproved)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	_, err = f.docs.Receipts.Transition(ctx, actor, r.ID, entity.ReceiptCompleted)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "completar dos veces no vuelve a sumar")
	assert.Equal(t, int64(10), f.qty(t, screw, binB))
}

func TestReceipt_EstadoDesconocido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-1", 10))
	require.NoError(t, err)

	_, err = f.docs.Receipts.TransitionTo(ctx, actor, r.ID, "archivado")
	require.ErrorIs(t, err, domain.ErrIllegalTransition, "un estado fuera del enum no está en la tabla")
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "draft", te.From)
	assert.Equal(t, "archivado", te.To)

	got, err := f.docs.Receipts.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptDraft, got.Status)

	_, err = f.docs.Receipts.List(ctx, "archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Validaciones ─────────────────────────────────────────────────────────────

func TestReceipt_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   documents.ReceiptInput
		want error
	}{
		{"sin código", documents.ReceiptInput{SupplierID: supplier, Lines: receiptInput("", 1).Lines}, domain.ErrInvalidInput},
		{"sin líneas", documents.ReceiptInput{Code: "R", SupplierID: supplier}, domain.ErrInvalidInput},
		{"cantidad cero", receiptInput("R", 0), domain.ErrInvalidInput},
		{"proveedor inexistente", documents.ReceiptInput{Code: "R", SupplierID: "x", Lines: receiptInput("", 1).Lines}, domain.ErrNotFound},
		{"producto inexistente", documents.ReceiptInput{Code: "R", SupplierID: supplier, Lines: []entity.ReceiptLine{{ProductID: "x", Quantity: 1}}}, domain.ErrNotFound},
		{"ubicación no bin", documents.ReceiptInput{Code: "R", SupplierID: supplier, Lines: []entity.ReceiptLine{{ProductID: screw, LocationID: zone, Quantity: 1}}}, domain.ErrNotABin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.docs.Receipts.Create(ctx, actor, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReceipt_CodigoDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-1", 1))
	require.NoError(t, err)

	_, err = f.docs.Receipts.Create(ctx, actor, receiptInput("REC-1", 2))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	other, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-2", 2))
	require.NoError(t, err)
	_, err = f.docs.Receipts.Update(ctx, actor, other.ID, receiptInput("REC-1", 2))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

// ─── Edición y borrado ────────────────────────────────────────────────────────

func TestReceipt_EditarYBorrarSoloEnBorrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-1", 1))
	require.NoError(t, err)

	r, err = f.docs.Receipts.Update(ctx, actor, r.ID, receiptInput("REC-1", 5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), r.Lines[0].Quantity)

	_, err = f.docs.Receipts.Transition(ctx, actor, r.ID, entity.ReceiptApproved)
	require.NoError(t, err)

	_, err = f.docs.Receipts.Update(ctx, actor, r.ID, receiptInput("REC-1", 9))
	assert.ErrorIs(t, err, domain.ErrDocumentLocked)
	assert.ErrorIs(t, f.docs.Receipts.Delete(ctx, actor, r.ID), domain.ErrDocumentLocked)

	draft, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-2", 1))
	require.NoError(t, err)
	require.NoError(t, f.docs.Receipts.Delete(ctx, actor, draft.ID))
	_, err = f.docs.Receipts.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceipt_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, "REC-1", screw, binB, 1)
	_, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-2", 1))
	require.NoError(t, err)

	drafts, err := f.docs.Receipts.List(ctx, string(entity.ReceiptDraft))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "REC-2", drafts[0].Code)

	all, err := f.docs.Receipts.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// ─── Auditoría ────────────────────────────────────────────────────────────────

func TestReceipt_Auditoria(t *testing.T) {
	f := newFixture(t)
	r := f.receive(t, "REC-1", screw, binB, 3)

	entries := f.trail(t, entity.DocumentReceipt, r.ID)
	require.Len(t, entries, 4)
	assert.Equal(t, "receipt.transitioned", entries[0].Action)
	assert.Equal(t, map[string]any{"from": "supplierConfirmed", "to": "completed"}, entries[0].Payload)
	assert.Equal(t, "receipt.created", entries[3].Action)
	for _, e := range entries {
		require.NotNil(t, e.Actor)
		assert.Equal(t, actor, *e.Actor)
	}
}

func TestReceipt_FalloNoDejaAuditoria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r, err := f.docs.Receipts.Create(ctx, actor, receiptInput("REC-1", 1))
	require.NoError(t, err)

	_, err = f.docs.Receipts.Transition(ctx, actor, r.ID, entity.ReceiptCompleted)
	require.Error(t, err)

	assert.Len(t, f.trail(t, entity.DocumentReceipt, r.ID), 1, "solo la creación")
}
