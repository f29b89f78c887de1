package inventory

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// TxRunner alias del puerto transaccional para los casos de uso de inventario.
type TxRunner = repository.TxRunner

// Locker serializa operaciones sobre una misma clave (p.ej. "receipt:<id>").
// Si el lock no se obtiene devuelve domain.ErrLockNotObtained.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
