package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one roster row: a mapping from column name to value.
// Values hold whatever the source format decoded them to: string, float64,
// bool, nil, or nested maps/slices for structured columns.
type Record map[string]any

// Has reports whether the record contains the named field, including
// fields explicitly set to null.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// StringValue returns the canonical string form of the named field's value
// and whether the field is present. Grouping and comparison use this form so
// that the JSON number 1003 and the CSV string "1003" count as the same
// identifier.
func (r Record) StringValue(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	return CanonicalString(v), true
}

// CanonicalString converts a decoded value to its canonical string form:
// strings are returned as-is, integral floats render without a decimal
// point, bools as "true"/"false", nil as the empty string, and structured
// values as compact JSON.
func CanonicalString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
