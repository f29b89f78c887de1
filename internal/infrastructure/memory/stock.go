package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var (
	_ repository.StockRepository         = stockRepo{}
	_ repository.StockMovementRepository = movementRepo{}
)

type stockRepo struct{ s *Store }

func (r stockRepo) Get(_ context.Context, key entity.StockKey) (*entity.StockEntry, error) {
	if e, ok := r.s.state.stock[key]; ok {
		return &e, nil
	}
	return &entity.StockEntry{StockKey: key}, nil
}

// GetForUpdate igual a Get: la transacción ya tiene el almacén en exclusiva.
func (r stockRepo) GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockEntry, error) {
	return r.Get(ctx, key)
}

func (r stockRepo) Upsert(_ context.Context, entry *entity.StockEntry) error {
	r.s.state.stock[entry.StockKey] = *entry
	return nil
}

func (r stockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockEntry, error) {
	return r.filter(func(k entity.StockKey) bool { return k.ProductID == productID }), nil
}

func (r stockRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.StockEntry, error) {
	return r.filter(func(k entity.StockKey) bool { return k.LocationID == locationID }), nil
}

// filter omite las claves en cero, igual que el listado de PostgreSQL.
func (r stockRepo) filter(keep func(entity.StockKey) bool) []*entity.StockEntry {
	out := make([]*entity.StockEntry, 0)
	for k, e := range r.s.state.stock {
		if keep(k) && e.Quantity != 0 {
			e := e
			out = append(out, &e)
		}
	}
	slices.SortFunc(out, func(a, b *entity.StockEntry) int {
		return cmp.Or(
			cmp.Compare(a.ProductID, b.ProductID),
			cmp.Compare(a.LocationID, b.LocationID),
			cmp.Compare(a.Batch, b.Batch),
		)
	})
	return out
}

type movementRepo struct{ s *Store }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.state.movements = append(r.s.state.movements, *m)
	return nil
}

func (r movementRepo) ListByKey(_ context.Context, key entity.StockKey, limit int) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	all := r.s.state.movements
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Key != key {
			continue
		}
		m := all[i]
		out = append(out, &m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r movementRepo) ListByReference(_ context.Context, refType entity.DocumentType, refID string) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.state.movements {
		if m.ReferenceType == refType && m.ReferenceID == refID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}
