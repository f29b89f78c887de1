package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// DocumentRepository persistencia genérica de documentos de un tipo.
// Create devuelve domain.ErrDuplicateCode si el código ya existe en el tipo;
// Get/GetForUpdate/Update/Delete devuelven un *domain.NotFoundError si el id no existe.
type DocumentRepository[D entity.Document] interface {
	Create(ctx context.Context, doc *D) error
	Get(ctx context.Context, id string) (*D, error)
	// GetForUpdate bloquea el documento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*D, error)
	Update(ctx context.Context, doc *D) error
	Delete(ctx context.Context, id string) error
	CodeExists(ctx context.Context, code string) (bool, error)
	// List por estado ("" = todos), más recientes primero.
	List(ctx context.Context, status string) ([]*D, error)
}
