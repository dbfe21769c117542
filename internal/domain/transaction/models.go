package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether money moved into or out of the account.
type Direction string

const (
	Credited Direction = "credited"
	Debited  Direction = "debited"
)

// Payment mode tags. Mode is a free string in storage but the extractor
// only ever produces one of these values.
const (
	ModeUPI      = "UPI"
	ModeIMPS     = "IMPS"
	ModeNEFT     = "NEFT"
	ModeRTGS     = "RTGS"
	ModeACH      = "ACH"
	ModeATM      = "ATM"
	ModeCard     = "Card"
	ModeTransfer = "Bank Transfer"
	ModeCash     = "Cash"
	ModeOther    = "Other"
)

// BankUnknown is the bank field value when no known bank was mentioned.
const BankUnknown = "Unknown"

// Transaction is one parsed (or unparseable) bank notification.
// Records are immutable after creation; retention pruning is the only
// way they leave storage.
type Transaction struct {
	ID           int64            `json:"id"` // ms-epoch at ingestion time
	Amount       decimal.Decimal  `json:"amount"`
	Direction    Direction        `json:"type"`
	Bank         string           `json:"bank"`
	Mode         string           `json:"mode"`
	Balance      *decimal.Decimal `json:"balance,omitempty"`
	Description  string           `json:"description"`
	Reference    string           `json:"reference,omitempty"`
	CardLastFour string           `json:"cardLastFour,omitempty"`
	Confidence   float64          `json:"confidence"`
	Parsed       bool             `json:"parsed"`
	RawMessage   string           `json:"rawMessage"`
	Timestamp    time.Time        `json:"timestamp"`
}

// Extraction is the structured result of parsing one notification string.
// It is produced by Extract and never persisted directly.
type Extraction struct {
	Amount           decimal.Decimal
	Direction        Direction
	DirectionGuessed bool // fallback applied because keywords were ambiguous
	Bank             string
	Mode             string
	Balance          *decimal.Decimal
	Description      string
	Reference        string
	CardLastFour     string
	Confidence       float64
	AmountRule       string // name of the winning amount rule
}
