package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/workflow"
)

func TestReceipt_CadenaCompleta(t *testing.T) {
	chain := []entity.ReceiptStatus{
		entity.ReceiptDraft, entity.ReceiptApproved, entity.ReceiptSupplierConfirmed, entity.ReceiptCompleted,
	}
	for i := 0; i < len(chain)-1; i++ {
		assert.NoError(t, workflow.Receipt.Check(chain[i], chain[i+1]), "%s -> %s", chain[i], chain[i+1])
	}
	assert.True(t, workflow.Receipt.IsTerminal(entity.ReceiptCompleted))
}

func TestDelivery_NoPermiteSaltarEstados(t *testing.T) {
	err := workflow.Delivery.Check(entity.DeliveryDraft, entity.DeliveryCompleted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIllegalTransition))

	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "delivery", te.DocumentType)
	assert.Equal(t, "draft", te.From)
	assert.Equal(t, "completed", te.To)
}

func TestTablas_EstadosTerminalesSinSucesores(t *testing.T) {
	assert.True(t, workflow.Disposal.IsTerminal(entity.DisposalCompleted))
	assert.True(t, workflow.Return.IsTerminal(entity.ReturnCompleted))
	assert.True(t, workflow.Stocktake.IsTerminal(entity.StocktakeApplied))
	assert.True(t, workflow.Adjustment.IsTerminal(entity.AdjustmentApproved))
	assert.Empty(t, workflow.Delivery.Next(entity.DeliveryCompleted))
}

func TestTablas_NoPermiteRetroceder(t *testing.T) {
	assert.Error(t, workflow.Stocktake.Check(entity.StocktakeApproved, entity.StocktakeDraft))
	assert.Error(t, workflow.Adjustment.Check(entity.AdjustmentApproved, entity.AdjustmentApproved))
	assert.Error(t, workflow.Return.Check(entity.ReturnCompleted, entity.ReturnApproved))
}

func TestTable_Known(t *testing.T) {
	assert.True(t, workflow.Delivery.Known(entity.DeliveryDelivered))
	assert.True(t, workflow.Delivery.Known(entity.DeliveryDraft))
	assert.False(t, workflow.Delivery.Known(entity.DeliveryStatus("shipped")))
	assert.Equal(t, entity.ReceiptDraft, workflow.Receipt.Initial())
}
