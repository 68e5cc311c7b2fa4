// Package convert provides numeric coercion for loosely typed API payloads.
package convert

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Decimal converts a gjson value that may arrive as a JSON string or a JSON
// number into a decimal. Number values are parsed from their raw token so no
// float64 round-trip can distort them. The second return is false when the
// value is absent, null, or unparseable.
func Decimal(res gjson.Result) (decimal.Decimal, bool) {
	switch res.Type {
	case gjson.String:
		d, err := decimal.NewFromString(strings.TrimSpace(res.Str))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case gjson.Number:
		d, err := decimal.NewFromString(strings.TrimSpace(res.Raw))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// Int64 converts a gjson value that may arrive as a string or a number into
// an int64, returning false when absent or unparseable.
func Int64(res gjson.Result) (int64, bool) {
	switch res.Type {
	case gjson.String, gjson.Number:
		d, ok := Decimal(res)
		if !ok {
			return 0, false
		}
		return d.IntPart(), true
	default:
		return 0, false
	}
}
