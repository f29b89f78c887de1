package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingType dirección del cambio de valor.
type PostingType string

const (
	PostingGain PostingType = "gain"
	PostingLoss PostingType = "loss"
)

// FinancialPosting contabilización generada al aprobar un ajuste con delta de valor distinto de cero.
type FinancialPosting struct {
	ID           string          `json:"id"`
	PartnerID    string          `json:"partner_id"`
	Amount       decimal.Decimal `json:"amount"` // con signo
	Type         PostingType     `json:"type"`
	AdjustmentID string          `json:"adjustment_id"`
	Date         time.Time       `json:"date"`
}
