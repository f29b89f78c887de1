package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = productRepo{}
	_ repository.PartnerRepository  = partnerRepo{}
	_ repository.LocationRepository = locationRepo{}
)

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.state.products[p.ID]; ok {
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrConflict)
	}
	r.s.state.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.state.products[id]
	if !ok {
		return nil, domain.NotFound("producto", id)
	}
	return &p, nil
}

type partnerRepo struct{ s *Store }

func (r partnerRepo) Create(_ context.Context, p *entity.Partner) error {
	for _, existing := range r.s.state.partners {
		if existing.ID == p.ID || existing.Code == p.Code {
			return fmt.Errorf("tercero %s: %w", p.Code, domain.ErrConflict)
		}
	}
	r.s.state.partners[p.ID] = *p
	return nil
}

func (r partnerRepo) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	p, ok := r.s.state.partners[id]
	if !ok {
		return nil, domain.NotFound("tercero", id)
	}
	return &p, nil
}

func (r partnerRepo) GetByCode(_ context.Context, code string) (*entity.Partner, error) {
	for _, p := range r.s.state.partners {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, domain.NotFound("tercero", code)
}

type locationRepo struct{ s *Store }

func (r locationRepo) Create(_ context.Context, l *entity.Location) error {
	if _, ok := r.s.state.locations[l.ID]; ok {
		return fmt.Errorf("ubicación %s: %w", l.ID, domain.ErrConflict)
	}
	r.s.state.locations[l.ID] = *l
	return nil
}

func (r locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.s.state.locations[id]
	if !ok {
		return nil, domain.NotFound("ubicación", id)
	}
	return &l, nil
}

func (r locationRepo) DefaultBin(_ context.Context) (*entity.Location, error) {
	var bins []entity.Location
	for _, l := range r.s.state.locations {
		if l.IsDefault && l.Kind == entity.LocationKindBin {
			bins = append(bins, l)
		}
	}
	if len(bins) == 0 {
		return nil, domain.NotFound("bin por defecto", "")
	}
	slices.SortFunc(bins, func(a, b entity.Location) int { return cmp.Compare(a.Code, b.Code) })
	return &bins[0], nil
}
