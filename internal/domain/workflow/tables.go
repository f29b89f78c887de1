package workflow

import "github.com/jhoicas/almacen-ledger/internal/domain/entity"

// Receipt draft -> approved -> supplierConfirmed -> completed.
var Receipt = NewTable(string(entity.DocumentReceipt), entity.ReceiptDraft, map[entity.ReceiptStatus][]entity.ReceiptStatus{
	entity.ReceiptDraft:             {entity.ReceiptApproved},
	entity.ReceiptApproved:          {entity.ReceiptSupplierConfirmed},
	entity.ReceiptSupplierConfirmed: {entity.ReceiptCompleted},
})

// Delivery draft -> approved -> prepared -> delivered -> completed.
var Delivery = NewTable(string(entity.DocumentDelivery), entity.DeliveryDraft, map[entity.DeliveryStatus][]entity.DeliveryStatus{
	entity.DeliveryDraft:     {entity.DeliveryApproved},
	entity.DeliveryApproved:  {entity.DeliveryPrepared},
	entity.DeliveryPrepared:  {entity.DeliveryDelivered},
	entity.DeliveryDelivered: {entity.DeliveryCompleted},
})

// Disposal draft -> approved -> completed.
var Disposal = NewTable(string(entity.DocumentDisposal), entity.DisposalDraft, map[entity.DisposalStatus][]entity.DisposalStatus{
	entity.DisposalDraft:    {entity.DisposalApproved},
	entity.DisposalApproved: {entity.DisposalCompleted},
})

// Return draft -> approved -> completed.
var Return = NewTable(string(entity.DocumentReturn), entity.ReturnDraft, map[entity.ReturnStatus][]entity.ReturnStatus{
	entity.ReturnDraft:    {entity.ReturnApproved},
	entity.ReturnApproved: {entity.ReturnCompleted},
})

// Stocktake draft -> approved -> applied.
var Stocktake = NewTable(string(entity.DocumentStocktake), entity.StocktakeDraft, map[entity.StocktakeStatus][]entity.StocktakeStatus{
	entity.StocktakeDraft:    {entity.StocktakeApproved},
	entity.StocktakeApproved: {entity.StocktakeApplied},
})

// Adjustment draft -> approved.
var Adjustment = NewTable(string(entity.DocumentAdjustment), entity.AdjustmentDraft, map[entity.AdjustmentStatus][]entity.AdjustmentStatus{
	entity.AdjustmentDraft: {entity.AdjustmentApproved},
})
