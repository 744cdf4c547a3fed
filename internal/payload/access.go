package payload

import "encoding/json"

// IsObject reports whether v is a non-nil keyed mapping (*Object or
// map[string]any).
func IsObject(v any) bool {
	switch o := v.(type) {
	case *Object:
		return o != nil
	case map[string]any:
		return o != nil
	}
	return false
}

// Lookup reads key from a keyed mapping. Any other value has no fields.
func Lookup(v any, key string) (any, bool) {
	switch o := v.(type) {
	case *Object:
		return o.Get(key)
	case map[string]any:
		val, ok := o[key]
		return val, ok
	}
	return nil, false
}

// Truthy follows JSON-ish truthiness: null, false, "", and zero numbers are
// false; everything else, including empty arrays and objects, is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case *Object:
		return t != nil
	}
	return true
}
