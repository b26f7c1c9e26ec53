package rates

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

// DecodeRateTable parses a `{"valid":..,"updated":..,"base":..,"rates":{..}}`
// document. Unknown fields are skipped, currency codes are upper-cased.
func DecodeRateTable(data []byte) (*models.RateTable, error) {
	table := &models.RateTable{
		Rates: make(map[string]decimal.Decimal),
	}

	valid := true

	d := jx.DecodeBytes(data)

	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "valid":
			v, err := d.Bool()
			if err != nil {
				return errors.Wrap(err, "valid")
			}

			valid = v
		case "updated":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "updated")
			}

			table.Updated = time.Unix(v, 0).UTC()
		case "base":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "base")
			}

			table.Base = strings.ToUpper(v)
		case "rates":
			return d.ObjBytes(func(d *jx.Decoder, code []byte) error {
				num, err := d.Num()
				if err != nil {
					return errors.Wrapf(err, "rate %s", code)
				}

				value, err := decimal.NewFromString(num.String())
				if err != nil {
					return errors.Wrapf(err, "rate %s", code)
				}

				table.Rates[strings.ToUpper(string(code))] = value

				return nil
			})
		default:
			return d.Skip()
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode rate table")
	}

	if !valid {
		return nil, errors.New("rate table is marked as invalid")
	}

	if table.Base == "" {
		return nil, errors.New("rate table has no base currency")
	}

	if len(table.Rates) == 0 {
		return nil, errors.New("rate table is empty")
	}

	if _, ok := table.Rates[table.Base]; !ok {
		table.Rates[table.Base] = decimal.NewFromInt(1)
	}

	return table, nil
}
