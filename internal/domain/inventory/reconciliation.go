package inventory

import "github.com/jhoicas/almacen-ledger/internal/domain/entity"

// Reconcile convierte las líneas de un conteo en líneas de ajuste: delta = contado - sistema.
// Las líneas sin diferencia se descartan; el orden de las restantes se conserva.
func Reconcile(lines []entity.StocktakeLine) []entity.AdjustmentLine {
	out := make([]entity.AdjustmentLine, 0, len(lines))
	for _, l := range lines {
		delta := l.CountedQty - l.SystemQty
		if delta == 0 {
			continue
		}
		out = append(out, entity.AdjustmentLine{
			ProductID:  l.ProductID,
			LocationID: l.LocationID,
			Batch:      l.Batch,
			Delta:      delta,
		})
	}
	return out
}
