// Package memory implementa los repositorios en memoria con el mismo contrato transaccional
// que PostgreSQL: cada Run trabaja sobre el estado compartido y, si fn falla, se restaura
// la foto tomada al inicio. Las transacciones se serializan con un único mutex.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// Store almacén en memoria (tests y STORAGE_DRIVER=memory).
type Store struct {
	mu    sync.Mutex
	state *state
}

type storedDoc struct {
	id      string
	code    string
	status  string
	payload []byte
	seq     int64
}

type state struct {
	stock     map[entity.StockKey]entity.StockEntry
	movements []entity.StockMovement
	products  map[string]entity.Product
	partners  map[string]entity.Partner
	locations map[string]entity.Location
	docs      map[entity.DocumentType]map[string]storedDoc
	audit     []entity.AuditLogEntry
	postings  []entity.FinancialPosting
	seq       int64
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{state: &state{
		stock:     make(map[entity.StockKey]entity.StockEntry),
		products:  make(map[string]entity.Product),
		partners:  make(map[string]entity.Partner),
		locations: make(map[string]entity.Location),
		docs:      make(map[entity.DocumentType]map[string]storedDoc),
	}}
}

// Run ejecuta fn con repositorios sobre el estado actual; si fn devuelve error o entra en pánico
// se descarta todo lo que escribió. No es reentrante: fn no debe llamar a Run.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	committed := false
	defer func() {
		if !committed {
			s.state = snapshot
		}
	}()
	if err := fn(s.repositories()); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) repositories() repository.Repositories {
	return repository.Repositories{
		Stock:       stockRepo{s},
		Movements:   movementRepo{s},
		Products:    productRepo{s},
		Partners:    partnerRepo{s},
		Locations:   locationRepo{s},
		Receipts:    docRepo[entity.Receipt]{s},
		Deliveries:  docRepo[entity.Delivery]{s},
		Disposals:   docRepo[entity.Disposal]{s},
		Returns:     docRepo[entity.Return]{s},
		Stocktakes:  docRepo[entity.Stocktake]{s},
		Adjustments: docRepo[entity.Adjustment]{s},
		Audit:       auditRepo{s},
		Postings:    postingRepo{s},
	}
}

func (st *state) clone() *state {
	docs := make(map[entity.DocumentType]map[string]storedDoc, len(st.docs))
	for typ, m := range st.docs {
		docs[typ] = maps.Clone(m)
	}
	return &state{
		stock:     maps.Clone(st.stock),
		movements: slices.Clone(st.movements),
		products:  maps.Clone(st.products),
		partners:  maps.Clone(st.partners),
		locations: maps.Clone(st.locations),
		docs:      docs,
		audit:     slices.Clone(st.audit),
		postings:  slices.Clone(st.postings),
		seq:       st.seq,
	}
}

func (st *state) next() int64 {
	st.seq++
	return st.seq
}
