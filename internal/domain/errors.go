package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Las capas superiores comparan con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrIllegalTransition = errors.New("transición de estado no permitida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// Refinamientos: envuelven a un error base para que errors.Is siga funcionando con la categoría.
var (
	ErrDuplicateCode              = fmt.Errorf("código de documento duplicado: %w", ErrConflict)
	ErrAlreadyApproved            = fmt.Errorf("el documento ya fue aprobado: %w", ErrConflict)
	ErrApprovalRequirementsNotMet = fmt.Errorf("faltan requisitos de aprobación: %w", ErrConflict)
	ErrDocumentLocked             = fmt.Errorf("el documento ya no está en borrador: %w", ErrConflict)
	ErrLockNotObtained            = fmt.Errorf("el documento está siendo procesado: %w", ErrConflict)
	ErrConcurrentUpdate           = fmt.Errorf("otra operación bloqueó el mismo stock, reintente: %w", ErrConflict)
	ErrNotABin                    = fmt.Errorf("la ubicación no es un bin: %w", ErrInvalidInput)
)

// StockShortage detalla un faltante por clave de ledger.
type StockShortage struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Batch      string `json:"batch,omitempty"`
	Required   int64  `json:"required"`
	Available  int64  `json:"available"`
}

// InsufficientStockError agrupa todos los faltantes detectados en una misma operación.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("producto %s en %s: requerido %d, disponible %d",
			s.ProductID, s.LocationID, s.Required, s.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// TransitionError indica que el estado destino no es alcanzable desde el actual.
type TransitionError struct {
	DocumentType string
	From         string
	To           string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: transición %q -> %q no permitida", e.DocumentType, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// ValidationError describe un campo inválido.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError identifica la entidad referenciada que no existe.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}
