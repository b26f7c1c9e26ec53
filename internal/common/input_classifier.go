package common

import (
	"regexp"
	"time"

	"github.com/central-university-dev/go-currency-bot/internal/domain/errors"
)

// DateLayout is the dd.MM.yyyy format users type dates in.
const DateLayout = "02.01.2006"

var (
	numericRegex  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	currencyRegex = regexp.MustCompile(`^\w{3}$`)
	dateRegex     = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
)

// Predicate reports whether a single token has a given shape.
type Predicate func(token string) bool

// IsNumeric matches non-negative decimals such as 10 or 10.5.
func IsNumeric(token string) bool {
	return numericRegex.MatchString(token)
}

// IsCurrency matches any three word characters. Only the shape is checked,
// membership in the currency set is decided later.
func IsCurrency(token string) bool {
	return currencyRegex.MatchString(token)
}

// IsDate matches dd.mm.yyyy without checking that the day exists.
func IsDate(token string) bool {
	return dateRegex.MatchString(token)
}

func IsAny(string) bool {
	return true
}

// ParseDate parses a dd.MM.yyyy token in loc.
func ParseDate(token string, loc *time.Location) (time.Time, error) {
	if !IsDate(token) {
		return time.Time{}, &errors.ErrDateFormat{Value: token}
	}

	date, err := time.ParseInLocation(DateLayout, token, loc)
	if err != nil {
		return time.Time{}, &errors.ErrDateFormat{Value: token}
	}

	return date, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
