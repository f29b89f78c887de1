package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// LineValue valor de una cantidad a precio de compra: qty * priceIn.
func LineValue(qty int64, priceIn decimal.Decimal) decimal.Decimal {
	return priceIn.Mul(decimal.NewFromInt(qty))
}

// ValueDelta Σ(delta * priceIn) de las líneas de un ajuste. Productos sin precio en el mapa valen 0.
func ValueDelta(lines []entity.AdjustmentLine, priceIn map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineValue(l.Delta, priceIn[l.ProductID]))
	}
	return total
}

// TotalValue suma de los valores de las líneas de una baja.
func TotalValue(lines []entity.DisposalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Value)
	}
	return total
}

// PostingTypeFor dirección de la contabilización según el signo del delta de valor.
func PostingTypeFor(delta decimal.Decimal) entity.PostingType {
	if delta.IsNegative() {
		return entity.PostingLoss
	}
	return entity.PostingGain
}
