package memory

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// docRepo guarda cada documento serializado, así lo leído nunca comparte memoria con lo guardado.
type docRepo[D entity.Document] struct{ s *Store }

func (r docRepo[D]) docType() entity.DocumentType {
	var zero D
	return zero.DocType()
}

func (r docRepo[D]) table() map[string]storedDoc {
	typ := r.docType()
	m, ok := r.s.state.docs[typ]
	if !ok {
		m = make(map[string]storedDoc)
		r.s.state.docs[typ] = m
	}
	return m
}

func (r docRepo[D]) Create(ctx context.Context, doc *D) error {
	d := *doc
	table := r.table()
	if _, ok := table[d.DocID()]; ok {
		return fmt.Errorf("%s %s: %w", r.docType(), d.DocID(), domain.ErrConflict)
	}
	if taken, _ := r.CodeExists(ctx, d.DocCode()); taken {
		return fmt.Errorf("%s %q: %w", r.docType(), d.DocCode(), domain.ErrDuplicateCode)
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", r.docType(), err)
	}
	table[d.DocID()] = storedDoc{
		id:      d.DocID(),
		code:    d.DocCode(),
		status:  d.DocStatus(),
		payload: payload,
		seq:     r.s.state.next(),
	}
	return nil
}

func (r docRepo[D]) Get(_ context.Context, id string) (*D, error) {
	stored, ok := r.table()[id]
	if !ok {
		return nil, domain.NotFound(string(r.docType()), id)
	}
	return r.decode(stored)
}

func (r docRepo[D]) GetForUpdate(ctx context.Context, id string) (*D, error) {
	return r.Get(ctx, id)
}

func (r docRepo[D]) Update(_ context.Context, doc *D) error {
	d := *doc
	table := r.table()
	stored, ok := table[d.DocID()]
	if !ok {
		return domain.NotFound(string(r.docType()), d.DocID())
	}
	if stored.code != d.DocCode() {
		for id, other := range table {
			if id != d.DocID() && other.code == d.DocCode() {
				return fmt.Errorf("%s %q: %w", r.docType(), d.DocCode(), domain.ErrDuplicateCode)
			}
		}
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", r.docType(), err)
	}
	stored.code = d.DocCode()
	stored.status = d.DocStatus()
	stored.payload = payload
	table[d.DocID()] = stored
	return nil
}

func (r docRepo[D]) Delete(_ context.Context, id string) error {
	table := r.table()
	if _, ok := table[id]; !ok {
		return domain.NotFound(string(r.docType()), id)
	}
	delete(table, id)
	return nil
}

func (r docRepo[D]) CodeExists(_ context.Context, code string) (bool, error) {
	for _, stored := range r.table() {
		if stored.code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r docRepo[D]) List(_ context.Context, status string) ([]*D, error) {
	rows := make([]storedDoc, 0)
	for _, stored := range r.table() {
		if status == "" || stored.status == status {
			rows = append(rows, stored)
		}
	}
	slices.SortFunc(rows, func(a, b storedDoc) int { return cmp.Compare(b.seq, a.seq) })
	out := make([]*D, 0, len(rows))
	for _, stored := range rows {
		d, err := r.decode(stored)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r docRepo[D]) decode(stored storedDoc) (*D, error) {
	var d D
	if err := json.Unmarshal(stored.payload, &d); err != nil {
		return nil, fmt.Errorf("deserializar %s %s: %w", r.docType(), stored.id, err)
	}
	return &d, nil
}
