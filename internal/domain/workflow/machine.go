// Package workflow define las máquinas de estado de los documentos: una tabla por tipo
// que mapea estado actual -> estados siguientes permitidos.
package workflow

import (
	"slices"

	"github.com/jhoicas/almacen-ledger/internal/domain"
)

// Table tabla de transiciones de un tipo de documento. Los estados terminales no tienen sucesores.
type Table[S ~string] struct {
	document string
	initial  S
	edges    map[S][]S
}

// NewTable construye una tabla; initial es el estado de creación (borrador).
func NewTable[S ~string](document string, initial S, edges map[S][]S) Table[S] {
	return Table[S]{document: document, initial: initial, edges: edges}
}

// Initial estado en el que nace el documento.
func (t Table[S]) Initial() S { return t.initial }

// Next estados alcanzables desde from.
func (t Table[S]) Next(from S) []S {
	return slices.Clone(t.edges[from])
}

// Allows indica si from -> to está en la tabla.
func (t Table[S]) Allows(from, to S) bool {
	return slices.Contains(t.edges[from], to)
}

// IsTerminal indica si el estado no tiene sucesores.
func (t Table[S]) IsTerminal(s S) bool {
	return len(t.edges[s]) == 0
}

// Known indica si el estado pertenece al enum del documento.
func (t Table[S]) Known(s S) bool {
	if s == t.initial {
		return true
	}
	for from, next := range t.edges {
		if from == s || slices.Contains(next, s) {
			return true
		}
	}
	return false
}

// Check devuelve *domain.TransitionError si from -> to no es legal.
func (t Table[S]) Check(from, to S) error {
	if !t.Allows(from, to) {
		return &domain.TransitionError{DocumentType: t.document, From: string(from), To: string(to)}
	}
	return nil
}
