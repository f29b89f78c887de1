package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/domain/workflow"
)

// kind describe cómo el motor trata un tipo de documento.
type kind[D entity.Document, S ~string, In any] struct {
	typ       entity.DocumentType
	table     workflow.Table[S]
	repo      func(repository.Repositories) repository.DocumentRepository[D]
	header    func(*D) *entity.DocumentHeader
	status    func(*D) S
	setStatus func(*D, S)
	// apply copia la entrada sobre el documento y valida referencias; se usa al crear y al editar.
	apply func(ctx context.Context, repos repository.Repositories, in In, doc *D) error
	// guard opcional, corre antes de consultar la tabla de transiciones.
	guard func(doc *D, to S) error
	// effect efectos del arco from -> to; corre antes de persistir el nuevo estado.
	effect func(ctx context.Context, repos repository.Repositories, actor string, doc *D, to S) error
}

// Service operaciones comunes a todos los documentos.
type Service[D entity.Document, S ~string, In any] struct {
	e *engine
	k kind[D, S, In]
}

// Create crea el documento en su estado inicial.
func (s *Service[D, S, In]) Create(ctx context.Context, actor string, in In) (*D, error) {
	var out *D
	err := s.e.tx.Run(ctx, func(repos repository.Repositories) error {
		now := s.e.now()
		doc := new(D)
		if err := s.k.apply(ctx, repos, in, doc); err != nil {
			return err
		}
		h := s.k.header(doc)
		if h.Code == "" {
			return domain.Invalid("code", "requerido")
		}
		h.ID = uuid.New().String()
		h.CreatedBy = actor
		h.CreatedAt = now
		h.UpdatedAt = now
		s.k.setStatus(doc, s.k.table.Initial())

		repo := s.k.repo(repos)
		taken, err := repo.CodeExists(ctx, h.Code)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%s %q: %w", s.k.typ, h.Code, domain.ErrDuplicateCode)
		}
		if err := repo.Create(ctx, doc); err != nil {
			return err
		}
		if err := audit.Write(ctx, repos.Audit, actor, string(s.k.typ), audit.ActionCreated, h.ID, map[string]any{
			"code":   h.Code,
			"status": string(s.k.status(doc)),
		}, now); err != nil {
			return err
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get devuelve el documento por id.
func (s *Service[D, S, In]) Get(ctx context.Context, id string) (*D, error) {
	var out *D
	err := s.e.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = s.k.repo(repos).Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List documentos del tipo, opcionalmente filtrados por estado.
func (s *Service[D, S, In]) List(ctx context.Context, status string) ([]*D, error) {
	if status != "" && !s.k.table.Known(S(status)) {
		return nil, domain.Invalid("status", fmt.Sprintf("%q no es un estado de %s", status, s.k.typ))
	}
	var out []*D
	err := s.e.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		out, err = s.k.repo(repos).List(ctx, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update reemplaza líneas, fecha y notas; solo en borrador.
func (s *Service[D, S, In]) Update(ctx context.Context, actor, id string, in In) (*D, error) {
	return s.mutateDraft(ctx, actor, id, audit.ActionUpdated, func(ctx context.Context, repos repository.Repositories, doc *D) (map[string]any, error) {
		if err := s.k.apply(ctx, repos, in, doc); err != nil {
			return nil, err
		}
		if s.k.header(doc).Code == "" {
			return nil, domain.Invalid("code", "requerido")
		}
		return map[string]any{"code": s.k.header(doc).Code}, nil
	})
}

// Delete elimina el documento junto con sus líneas; solo en borrador.
func (s *Service[D, S, In]) Delete(ctx context.Context, actor, id string) error {
	unlock, err := s.e.lock(ctx, s.k.typ, id)
	if err != nil {
		return err
	}
	defer unlock()

	return s.e.tx.Run(ctx, func(repos repository.Repositories) error {
		repo := s.k.repo(repos)
		doc, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.requireDraft(doc); err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		return audit.Write(ctx, repos.Audit, actor, string(s.k.typ), audit.ActionDeleted, id, map[string]any{
			"code": s.k.header(doc).Code,
		}, s.e.now())
	})
}

// Transition lleva el documento al estado to ejecutando los efectos del arco.
// Un estado que no existe para el tipo no está en la tabla: falla como transición ilegal.
// Si algo falla, documento y ledger quedan como estaban.
func (s *Service[D, S, In]) Transition(ctx context.Context, actor, id string, to S) (*D, error) {
	unlock, err := s.e.lock(ctx, s.k.typ, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var out *D
	err = s.e.tx.Run(ctx, func(repos repository.Repositories) error {
		doc, err := s.k.repo(repos).GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.transitionLoaded(ctx, repos, actor, doc, to); err != nil {
			return err
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TransitionTo igual que Transition, con el estado destino como texto.
func (s *Service[D, S, In]) TransitionTo(ctx context.Context, actor, id, to string) (*D, error) {
	return s.Transition(ctx, actor, id, S(to))
}

// transitionLoaded aplica la transición sobre un documento ya leído en la transacción en curso.
func (s *Service[D, S, In]) transitionLoaded(ctx context.Context, repos repository.Repositories, actor string, doc *D, to S) error {
	from := s.k.status(doc)
	if s.k.guard != nil {
		if err := s.k.guard(doc, to); err != nil {
			return err
		}
	}
	if err := s.k.table.Check(from, to); err != nil {
		return err
	}
	if s.k.effect != nil {
		if err := s.k.effect(ctx, repos, actor, doc, to); err != nil {
			return err
		}
	}

	now := s.e.now()
	h := s.k.header(doc)
	s.k.setStatus(doc, to)
	h.UpdatedAt = now
	if err := s.k.repo(repos).Update(ctx, doc); err != nil {
		return err
	}
	if err := audit.Write(ctx, repos.Audit, actor, string(s.k.typ), audit.ActionTransitioned, h.ID, map[string]any{
		"from": string(from),
		"to":   string(to),
	}, now); err != nil {
		return err
	}
	s.e.log.Debug().
		Str("document_type", string(s.k.typ)).
		Str("document_id", h.ID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("transición aplicada")
	return nil
}

// mutateDraft carga el documento bloqueado, exige borrador, aplica fn, persiste y audita.
func (s *Service[D, S, In]) mutateDraft(
	ctx context.Context, actor, id, verb string,
	fn func(ctx context.Context, repos repository.Repositories, doc *D) (map[string]any, error),
) (*D, error) {
	unlock, err := s.e.lock(ctx, s.k.typ, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var out *D
	err = s.e.tx.Run(ctx, func(repos repository.Repositories) error {
		repo := s.k.repo(repos)
		doc, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.requireDraft(doc); err != nil {
			return err
		}
		h := s.k.header(doc)
		prevCode := h.Code
		payload, err := fn(ctx, repos, doc)
		if err != nil {
			return err
		}
		if h.Code != prevCode {
			taken, err := repo.CodeExists(ctx, h.Code)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%s %q: %w", s.k.typ, h.Code, domain.ErrDuplicateCode)
			}
		}
		now := s.e.now()
		h.UpdatedAt = now
		if err := repo.Update(ctx, doc); err != nil {
			return err
		}
		if err := audit.Write(ctx, repos.Audit, actor, string(s.k.typ), verb, id, payload, now); err != nil {
			return err
		}
		out = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service[D, S, In]) requireDraft(doc *D) error {
	if st := s.k.status(doc); st != s.k.table.Initial() {
		return fmt.Errorf("%s %s en estado %q: %w", s.k.typ, s.k.header(doc).Code, st, domain.ErrDocumentLocked)
	}
	return nil
}

// isNotFound atajo para distinguir la ausencia de un registro de fallos de infraestructura.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
