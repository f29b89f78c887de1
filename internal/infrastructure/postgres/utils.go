package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/almacen-ledger/internal/domain"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repositorios funcionan con cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isLockFailure deadlock detectado (40P01), lock_timeout vencido (55P03) o
// fallo de serialización (40001): la transacción se aborta y puede reintentarse.
func isLockFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40P01", "55P03", "40001":
		return true
	}
	return false
}

// translateTxError convierte los abortos por bloqueo en domain.ErrConcurrentUpdate (Conflict).
func translateTxError(err error) error {
	if err == nil || errors.Is(err, domain.ErrConflict) || !isLockFailure(err) {
		return err
	}
	return fmt.Errorf("%w (%v)", domain.ErrConcurrentUpdate, err)
}

// validID las columnas id son UUID; un id mal formado no puede existir.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
