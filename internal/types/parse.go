package types

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The datastore returns JSON field values with no schema guarantees: numbers
// arrive as float64 or string, flags as bool or string, and absent fields as
// nil. These helpers normalize that inconsistency at the ingestion boundary so
// the domain only ever sees clean Go values.

// ParseActiveFlag reports whether a raw field value encodes "this record is
// active". Both boolean true and the (case-insensitive) active sentinel string
// are accepted; everything else, including nil, is inactive.
func ParseActiveFlag(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(strings.TrimSpace(val), string(StatusActive))
	default:
		return false
	}
}

// ParseInt extracts an integer from a raw field value. Returns ok=false for
// nil, non-numeric strings and unsupported types.
func ParseInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ParseIntOrZero is ParseInt with non-numeric inputs collapsed to 0, used for
// occurrence counters where a blank cell means "never billed".
func ParseIntOrZero(v interface{}) int {
	n, ok := ParseInt(v)
	if !ok {
		return 0
	}
	return n
}

// ParseDecimal extracts a decimal from a raw field value. Returns ok=false
// when the value is absent or unparsable; callers decide whether that is a
// hard error (prices) or a default (tax rates).
func ParseDecimal(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case float64:
		return decimal.NewFromFloat(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case string:
		// Hand-entered prices sometimes use a comma decimal separator.
		s := strings.ReplaceAll(strings.TrimSpace(val), ",", ".")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// ParseString extracts a trimmed string from a raw field value, empty when
// the field is absent or not a string.
func ParseString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// ParseStringSlice extracts a list of strings from a raw field value. Linked
// record fields come back as []interface{} of record ids.
func ParseStringSlice(v interface{}) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
