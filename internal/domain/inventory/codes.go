package inventory

import (
	"context"
	"fmt"
)

// Prefijos de los códigos generados automáticamente.
const (
	AdjustmentCodePrefix = "ADJ-"
	DisposalCodePrefix   = "DSP-"
)

// maxCodeAttempts límite de sufijos antes de rendirse.
const maxCodeAttempts = 1000

// CodeExists indica si un código ya está en uso dentro del tipo de documento.
type CodeExists func(ctx context.Context, code string) (bool, error)

// UniqueCode devuelve base si está libre; si no, base-1, base-2, ...
func UniqueCode(ctx context.Context, base string, exists CodeExists) (string, error) {
	candidate := base
	for i := 1; i <= maxCodeAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no se encontró código libre para %q tras %d intentos", base, maxCodeAttempts)
}
