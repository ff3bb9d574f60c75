// Package jsonpath walks documents decoded into map[string]any / []any
// without panicking on missing or mistyped intermediate nodes.
package jsonpath

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is the result of a lookup. The zero Value is absent.
type Value struct {
	v     any
	found bool
}

// Get follows path through doc. String steps index objects and int steps index
// arrays; any other step, or a step that does not match the node type, yields
// an absent Value.
func Get(doc any, path ...any) Value {
	cur := doc
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return Value{}
			}
			next, ok := m[key]
			if !ok {
				return Value{}
			}
			cur = next
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return Value{}
			}
			cur = arr[key]
		default:
			return Value{}
		}
	}
	return Value{v: cur, found: true}
}

// Found reports whether the path resolved. A JSON null counts as found.
func (v Value) Found() bool { return v.found }

// Present reports whether the path resolved to a non-null value.
func (v Value) Present() bool { return v.found && v.v != nil }

func (v Value) Raw() any { return v.v }

func (v Value) Get(path ...any) Value {
	if !v.Present() {
		return Value{}
	}
	return Get(v.v, path...)
}

func (v Value) Object() (map[string]any, bool) {
	m, ok := v.v.(map[string]any)
	return m, ok
}

func (v Value) Array() ([]any, bool) {
	a, ok := v.v.([]any)
	return a, ok
}

// String returns string values as-is and renders numbers without exponent,
// so numeric ids decoded as json.Number or float64 keep their digits.
func (v Value) String() *string {
	var s string
	switch x := v.v.(type) {
	case string:
		s = x
	case json.Number:
		s = x.String()
	case float64:
		if x != math.Trunc(x) {
			return nil
		}
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return nil
	}
	return &s
}

func (v Value) Bool() *bool {
	b, ok := v.v.(bool)
	if !ok {
		return nil
	}
	return &b
}

// Int accepts integral numbers and digit strings.
func (v Value) Int() *int64 {
	var n int64
	switch x := v.v.(type) {
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return nil
		}
		n = i
	case float64:
		if x != math.Trunc(x) || x >= math.MaxInt64 || x < math.MinInt64 {
			return nil
		}
		n = int64(x)
	case int:
		n = int64(x)
	case int64:
		n = x
	case string:
		i, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	return &n
}
