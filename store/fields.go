package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The accessors below accept every representation the backends return:
// Memory hands back what was stored, DynamoDB decodes numbers as float64
// and lists as []any.

// String returns the field as a string, or "" when absent.
func (f Fields) String(key string) string {
	switch v := f[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the field as an int, or 0 when absent or not integral.
func (f Fields) Int(key string) int {
	switch v := f[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0
		}
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float returns the field as a float64, or 0 when absent or not numeric.
func (f Fields) Float(key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Strings returns the field as a string slice, or nil when absent.
// Non-string list elements are skipped.
func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Clone returns a deep copy of the fields, without store-managed attributes.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if isManaged(k) {
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case Fields:
		out := make(Fields, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// isManaged reports whether key is a store-managed attribute.
func isManaged(key string) bool {
	switch key {
	case FieldID, FieldCreatedAt, FieldUpdatedAt, fieldPK:
		return true
	}
	return false
}
