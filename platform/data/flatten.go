package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robbyt/go-flowexpr/platform/types"
)

// DefaultKey is the reserved key inside a nested map that supplies the value
// of the map's own path, e.g. {"contact": {"__default__": "Joe Blow",
// "first_name": "Joe"}} makes both "contact" and "contact.first_name"
// resolvable.
const DefaultKey = "__default__"

// Flatten converts a nested variable map into a flat mapping from lowercased
// dotted paths to normalized engine values.
func Flatten(variables map[string]any) map[string]any {
	flattened := make(map[string]any)
	flattenInto(flattened, "", variables)
	return flattened
}

func flattenInto(out map[string]any, prefix string, variables map[string]any) {
	for key, value := range variables {
		key = strings.ToLower(key)

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			flattenInto(out, path, nested)
			continue
		}

		if key == DefaultKey && prefix != "" {
			out[prefix] = Normalize(value)
			continue
		}
		out[path] = Normalize(value)
	}
}

// Normalize converts a raw Go value into one of the engine's value kinds.
// Integers and floats become decimals, time.Time becomes a timed DateTime,
// and anything unrecognized falls back to its string form.
func Normalize(value any) any {
	switch typed := value.(type) {
	case string, bool, decimal.Decimal, types.DateTime, types.TimeOfDay:
		return typed
	case int:
		return decimal.NewFromInt(int64(typed))
	case int32:
		return decimal.NewFromInt(int64(typed))
	case int64:
		return decimal.NewFromInt(typed)
	case float32:
		return decimal.NewFromFloat32(typed)
	case float64:
		return decimal.NewFromFloat(typed)
	case time.Time:
		return types.DateTime{Time: typed}
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", value)
}
