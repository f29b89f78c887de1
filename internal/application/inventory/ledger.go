package inventory

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// Reference documento que origina una escritura del ledger.
type Reference struct {
	Type entity.DocumentType
	ID   string
}

// ReferenceStock referencia usada por los traslados manuales.
const ReferenceStock entity.DocumentType = "stock"

// AdjustCmd entrada de Adjust.
type AdjustCmd struct {
	Key        entity.StockKey
	Delta      int64
	ExpiryDate *time.Time
	// AllowNegative solo para correcciones de libros donde el negativo es el hecho a registrar.
	AllowNegative bool
	Reference     Reference
	Actor         string
}

// StockRequirement cantidad que debe estar disponible en una clave.
type StockRequirement struct {
	Key      entity.StockKey
	Quantity int64
}

// MoveCmd traslado entre dos bins del mismo producto/lote.
type MoveCmd struct {
	ProductID string `json:"product_id"`
	From      string `json:"from_location_id"`
	To        string `json:"to_location_id"`
	Batch     string `json:"batch,omitempty"`
	Quantity  int64  `json:"quantity"`
	Reference Reference
	Actor     string
}

// Ledger opera sobre los repositorios de la transacción en curso; no abre transacciones propias.
type Ledger struct {
	log *logger.Logger
	now func() time.Time
}

// NewLedger construye el ledger.
func NewLedger(log *logger.Logger) *Ledger {
	return &Ledger{log: log, now: time.Now}
}

// Adjust aplica delta a la clave: lectura bloqueada, cálculo, rechazo si queda negativa, escritura.
// La primera escritura con delta > 0 crea la entrada. Cada escritura deja un StockMovement.
func (l *Ledger) Adjust(ctx context.Context, repos repository.Repositories, cmd AdjustCmd) (*entity.StockEntry, error) {
	if cmd.Key.ProductID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if cmd.Delta == 0 {
		return nil, domain.Invalid("delta", "no puede ser cero")
	}
	if cmd.Delta == math.MinInt64 {
		return nil, domain.Invalid("delta", "fuera de rango")
	}
	if err := l.requireBin(ctx, repos.Locations, cmd.Key.LocationID); err != nil {
		return nil, err
	}

	entry, err := repos.Stock.GetForUpdate(ctx, cmd.Key)
	if err != nil {
		return nil, fmt.Errorf("leer stock: %w", err)
	}
	if overflows(entry.Quantity, cmd.Delta) {
		return nil, domain.Invalid("quantity", fmt.Sprintf("el saldo %d más %d excede el rango", entry.Quantity, cmd.Delta))
	}
	next := entry.Quantity + cmd.Delta
	if next < 0 && !cmd.AllowNegative {
		return nil, &domain.InsufficientStockError{Shortages: []domain.StockShortage{shortage(cmd.Key, -cmd.Delta, entry.Quantity)}}
	}

	now := l.now()
	entry.Quantity = next
	entry.UpdatedAt = now
	if cmd.ExpiryDate != nil && entry.ExpiryDate == nil {
		entry.ExpiryDate = cmd.ExpiryDate
	}
	if err := repos.Stock.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("guardar stock: %w", err)
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		Key:           cmd.Key,
		Delta:         cmd.Delta,
		Balance:       next,
		ReferenceType: cmd.Reference.Type,
		ReferenceID:   cmd.Reference.ID,
		CreatedBy:     cmd.Actor,
		CreatedAt:     now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}

	l.log.Trace().
		Str("product_id", cmd.Key.ProductID).
		Str("location_id", cmd.Key.LocationID).
		Int64("delta", cmd.Delta).
		Int64("balance", next).
		Msg("stock ajustado")
	return entry, nil
}

// EnsureStock verifica, sin escribir, que todas las cantidades estén disponibles.
// Los requerimientos sobre la misma clave se suman; se reportan todos los faltantes a la vez.
func (l *Ledger) EnsureStock(ctx context.Context, repos repository.Repositories, reqs []StockRequirement) error {
	order := make([]entity.StockKey, 0, len(reqs))
	totals := make(map[entity.StockKey]int64, len(reqs))
	for _, r := range reqs {
		if r.Quantity <= 0 {
			return domain.Invalid("quantity", "debe ser mayor que cero")
		}
		if _, seen := totals[r.Key]; !seen {
			order = append(order, r.Key)
		}
		if overflows(totals[r.Key], r.Quantity) {
			return domain.Invalid("quantity", "la suma requerida por clave excede el rango")
		}
		totals[r.Key] += r.Quantity
	}

	var shortages []domain.StockShortage
	for _, key := range order {
		if err := l.requireBin(ctx, repos.Locations, key.LocationID); err != nil {
			return err
		}
		entry, err := repos.Stock.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("leer stock: %w", err)
		}
		if entry.Quantity < totals[key] {
			shortages = append(shortages, shortage(key, totals[key], entry.Quantity))
		}
	}
	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Shortages: shortages}
	}
	return nil
}

// AdjustAll aplica cmds en su orden, tomando antes los locks de fila en orden de clave
// para que dos documentos con las mismas claves no se bloqueen mutuamente.
func (l *Ledger) AdjustAll(ctx context.Context, repos repository.Repositories, cmds []AdjustCmd) error {
	keys := make([]entity.StockKey, 0, len(cmds))
	for _, c := range cmds {
		keys = append(keys, c.Key)
	}
	if err := l.LockKeys(ctx, repos, keys); err != nil {
		return err
	}
	for _, c := range cmds {
		if _, err := l.Adjust(ctx, repos, c); err != nil {
			return err
		}
	}
	return nil
}

// LockKeys bloquea las claves (sin repetidas) en orden producto, ubicación, lote.
// Las ubicaciones se validan antes de tocar filas.
func (l *Ledger) LockKeys(ctx context.Context, repos repository.Repositories, keys []entity.StockKey) error {
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, compareKeys)
	sorted = slices.Compact(sorted)
	for _, k := range sorted {
		if err := l.requireBin(ctx, repos.Locations, k.LocationID); err != nil {
			return err
		}
	}
	for _, k := range sorted {
		if _, err := repos.Stock.GetForUpdate(ctx, k); err != nil {
			return fmt.Errorf("bloquear stock: %w", err)
		}
	}
	return nil
}

func compareKeys(a, b entity.StockKey) int {
	return cmp.Or(
		cmp.Compare(a.ProductID, b.ProductID),
		cmp.Compare(a.LocationID, b.LocationID),
		cmp.Compare(a.Batch, b.Batch),
	)
}

// overflows indica si a+b se sale de int64.
func overflows(a, b int64) bool {
	return (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b)
}

// Move descuenta en origen y suma en destino. Si el segundo tramo falla, el primero se
// deshace con la transacción que envuelve la llamada.
func (l *Ledger) Move(ctx context.Context, repos repository.Repositories, cmd MoveCmd) error {
	if cmd.Quantity <= 0 {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if cmd.From == "" || cmd.To == "" {
		return domain.Invalid("location_id", "origen y destino son requeridos")
	}
	if cmd.From == cmd.To {
		return domain.Invalid("to_location_id", "debe ser distinto del origen")
	}

	from := entity.StockKey{ProductID: cmd.ProductID, LocationID: cmd.From, Batch: cmd.Batch}
	to := entity.StockKey{ProductID: cmd.ProductID, LocationID: cmd.To, Batch: cmd.Batch}
	if err := l.LockKeys(ctx, repos, []entity.StockKey{from, to}); err != nil {
		return err
	}

	src, err := l.Adjust(ctx, repos, AdjustCmd{
		Key:       from,
		Delta:     -cmd.Quantity,
		Reference: cmd.Reference,
		Actor:     cmd.Actor,
	})
	if err != nil {
		return err
	}
	_, err = l.Adjust(ctx, repos, AdjustCmd{
		Key:        to,
		Delta:      cmd.Quantity,
		ExpiryDate: src.ExpiryDate,
		Reference:  cmd.Reference,
		Actor:      cmd.Actor,
	})
	return err
}

// ResolveBin valida que locationID sea un bin; vacío resuelve el bin por defecto.
func (l *Ledger) ResolveBin(ctx context.Context, repos repository.Repositories, locationID string) (string, error) {
	if locationID == "" {
		bin, err := repos.Locations.DefaultBin(ctx)
		if err != nil {
			return "", fmt.Errorf("resolver bin por defecto: %w", err)
		}
		return bin.ID, nil
	}
	if err := l.requireBin(ctx, repos.Locations, locationID); err != nil {
		return "", err
	}
	return locationID, nil
}

func (l *Ledger) requireBin(ctx context.Context, locations repository.LocationRepository, id string) error {
	if id == "" {
		return domain.Invalid("location_id", "requerido")
	}
	loc, err := locations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !loc.IsBin() {
		return fmt.Errorf("ubicación %s (%s): %w", loc.Code, loc.Kind, domain.ErrNotABin)
	}
	return nil
}

func shortage(key entity.StockKey, required, available int64) domain.StockShortage {
	return domain.StockShortage{
		ProductID:  key.ProductID,
		LocationID: key.LocationID,
		Batch:      key.Batch,
		Required:   required,
		Available:  available,
	}
}
