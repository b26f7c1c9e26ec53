package rates

import (
	_ "embed"
	"sync"

	"github.com/shopspring/decimal"

	domainerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

//go:embed snapshot.json
var snapshot []byte

// LoadSnapshot returns the rate table bundled with the binary. It is used
// until the first successful refresh, or for good when no API is configured.
func LoadSnapshot() (*models.RateTable, error) {
	return DecodeRateTable(snapshot)
}

// Store holds the current rate table. Tables are never mutated after
// Replace, readers get a consistent table for the whole computation.
type Store struct {
	mu    sync.RWMutex
	table *models.RateTable
}

func NewStore(table *models.RateTable) *Store {
	return &Store{table: table}
}

// Rate returns units of `to` per one unit of `from`.
func (s *Store) Rate(from, to string) (decimal.Decimal, error) {
	table := s.Snapshot()
	if table == nil {
		return decimal.Zero, &domainerrors.ErrRateUnavailable{Currency: from}
	}

	fromRate, ok := table.Rates[from]
	if !ok || fromRate.IsZero() {
		return decimal.Zero, &domainerrors.ErrRateUnavailable{Currency: from}
	}

	toRate, ok := table.Rates[to]
	if !ok {
		return decimal.Zero, &domainerrors.ErrRateUnavailable{Currency: to}
	}

	return toRate.Div(fromRate), nil
}

func (s *Store) Replace(table *models.RateTable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = table
}

func (s *Store) Snapshot() *models.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.table
}
