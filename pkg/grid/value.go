package grid

import (
	"math"
	"reflect"
)

// SameValue reports whether a cell value matches a range marker.
// A nil marker never matches. Numbers compare by value across integer and
// float kinds, so a marker decoded as int64 matches a cell value of int.
// Other values compare with == when comparable and never match otherwise.
func SameValue(marker, value any) bool {
	if marker == nil || value == nil {
		return false
	}
	if a, ok := asFloat(marker); ok {
		b, ok := asFloat(value)
		return ok && a == b
	}
	mv := reflect.ValueOf(marker)
	vv := reflect.ValueOf(value)
	if mv.Type() != vv.Type() || !mv.Comparable() {
		return false
	}
	return marker == value
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	default:
		return 0, false
	}
}
