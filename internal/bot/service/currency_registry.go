package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/central-university-dev/go-currency-bot/internal/domain/errors"
)

const currencyCodeLength = 3

// CurrencyRegistry is the fixed set of known currency codes. It is loaded
// once at startup and only read afterwards.
type CurrencyRegistry struct {
	codes map[string]struct{}
	order []string
}

func NewCurrencyRegistry(codes []string) *CurrencyRegistry {
	registry := &CurrencyRegistry{
		codes: make(map[string]struct{}, len(codes)),
		order: make([]string, 0, len(codes)),
	}

	for _, code := range codes {
		code = NormalizeCurrency(code)
		if _, ok := registry.codes[code]; ok {
			continue
		}

		registry.codes[code] = struct{}{}
		registry.order = append(registry.order, code)
	}

	return registry
}

func LoadCurrencyRegistry(ctx context.Context, repo CurrencyRepository) (*CurrencyRegistry, error) {
	codes, err := repo.ListCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке списка валют: %w", err)
	}

	if len(codes) == 0 {
		return nil, fmt.Errorf("список валют пуст")
	}

	return NewCurrencyRegistry(codes), nil
}

func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *CurrencyRegistry) Contains(code string) bool {
	_, ok := r.codes[NormalizeCurrency(code)]
	return ok
}

func (r *CurrencyRegistry) Codes() []string {
	return append([]string(nil), r.order...)
}

// Validate normalizes codes and checks them: every code must have three
// characters, then every code must be known. Errors name the first offender
// in argument order.
func (r *CurrencyRegistry) Validate(codes ...string) ([]string, error) {
	normalized := make([]string, len(codes))

	for i, code := range codes {
		normalized[i] = NormalizeCurrency(code)

		if utf8.RuneCountInString(normalized[i]) != currencyCodeLength {
			return nil, &errors.ErrValidation{Message: "Currency should contain 3 chars (For ex. USD)"}
		}
	}

	for _, code := range normalized {
		if !r.Contains(code) {
			return nil, &errors.ErrValidation{Message: fmt.Sprintf("Currency '%s' does not exist!", code)}
		}
	}

	return normalized, nil
}
