package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionLogEntry is appended once per successful quote and never changed.
type ConversionLogEntry struct {
	ID        int64
	AccountID int64
	From      string
	To        string
	Amount    decimal.Decimal
	Rate      decimal.Decimal
	CreatedAt time.Time
}

// QuoteRequest carries the optional parts of a quote. Empty fields fall back
// to the stored preference, an empty amount means 1.
type QuoteRequest struct {
	From   string
	To     string
	Amount string
}

type Quote struct {
	From   string
	To     string
	Amount decimal.Decimal
	Rate   decimal.Decimal
	Result decimal.Decimal
}

type HistoryRequest struct {
	DateFrom string
	DateTo   string
	CurFrom  string
	CurTo    string
}

// HistoryQuery is a validated history request: Start and End are the first
// and last calendar day of the period, both inclusive.
type HistoryQuery struct {
	AccountID int64
	Start     time.Time
	End       time.Time
	CurFrom   string
	CurTo     string
}

type HistoryReport struct {
	Query    HistoryQuery
	DateFrom string
	DateTo   string
	Today    bool
	Invalid  bool
	Entries  []*ConversionLogEntry
}
