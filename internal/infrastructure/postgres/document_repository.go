package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.DocumentRepository[entity.Receipt] = (*DocumentRepo[entity.Receipt])(nil)

// DocumentRepo guarda cualquier variante de documento en la tabla documents:
// código y estado en columnas (unicidad y filtros), el resto en payload JSONB.
type DocumentRepo[D entity.Document] struct {
	q   Querier
	typ entity.DocumentType
}

// NewDocumentRepository construye el adaptador para el tipo D. Pasar pool o tx (Querier).
func NewDocumentRepository[D entity.Document](q Querier) *DocumentRepo[D] {
	var zero D
	return &DocumentRepo[D]{q: q, typ: zero.DocType()}
}

// Create inserta el documento; un código repetido en el tipo devuelve domain.ErrDuplicateCode.
func (r *DocumentRepo[D]) Create(ctx context.Context, doc *D) error {
	d := *doc
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", r.typ, err)
	}
	h := d.DocHeader()
	_, err = r.q.Exec(ctx, `
		INSERT INTO documents (id, doc_type, code, status, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.DocID(), string(r.typ), d.DocCode(), d.DocStatus(), payload, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s %q: %w", r.typ, d.DocCode(), domain.ErrDuplicateCode)
		}
		return fmt.Errorf("insert %s: %w", r.typ, err)
	}
	return nil
}

// Get obtiene un documento por ID.
func (r *DocumentRepo[D]) Get(ctx context.Context, id string) (*D, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene el documento y bloquea la fila hasta el fin de la transacción.
func (r *DocumentRepo[D]) GetForUpdate(ctx context.Context, id string) (*D, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *DocumentRepo[D]) get(ctx context.Context, id, suffix string) (*D, error) {
	if !validID(id) {
		return nil, domain.NotFound(string(r.typ), id)
	}
	var payload []byte
	err := r.q.QueryRow(ctx,
		`SELECT payload FROM documents WHERE id = $1 AND doc_type = $2`+suffix, id, string(r.typ),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(string(r.typ), id)
		}
		return nil, fmt.Errorf("get %s: %w", r.typ, err)
	}
	return r.decode(id, payload)
}

// Update reescribe código, estado y payload.
func (r *DocumentRepo[D]) Update(ctx context.Context, doc *D) error {
	d := *doc
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", r.typ, err)
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE documents SET code = $3, status = $4, payload = $5, updated_at = $6
		WHERE id = $1 AND doc_type = $2`,
		d.DocID(), string(r.typ), d.DocCode(), d.DocStatus(), payload, d.DocHeader().UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s %q: %w", r.typ, d.DocCode(), domain.ErrDuplicateCode)
		}
		return fmt.Errorf("update %s: %w", r.typ, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(string(r.typ), d.DocID())
	}
	return nil
}

// Delete elimina el documento.
func (r *DocumentRepo[D]) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.NotFound(string(r.typ), id)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND doc_type = $2`, id, string(r.typ))
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.typ, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(string(r.typ), id)
	}
	return nil
}

// CodeExists indica si el código ya está tomado en el tipo.
func (r *DocumentRepo[D]) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE doc_type = $1 AND code = $2)`, string(r.typ), code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("code exists %s: %w", r.typ, err)
	}
	return exists, nil
}

// List documentos del tipo filtrados por estado ("" = todos), más recientes primero.
func (r *DocumentRepo[D]) List(ctx context.Context, status string) ([]*D, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, payload FROM documents
		WHERE doc_type = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id`, string(r.typ), status)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.typ, err)
	}
	defer rows.Close()

	out := make([]*D, 0)
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.typ, err)
		}
		d, err := r.decode(id, payload)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DocumentRepo[D]) decode(id string, payload []byte) (*D, error) {
	var d D
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("deserializar %s %s: %w", r.typ, id, err)
	}
	return &d, nil
}
