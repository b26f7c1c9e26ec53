package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable holds units of each currency per one unit of Base.
type RateTable struct {
	Base    string
	Updated time.Time
	Rates   map[string]decimal.Decimal
}
