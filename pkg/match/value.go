// Package match evaluates value query conditions against scalar and
// collection values. It is shared by the graph repository's query matcher
// and the flat entity repository.
package match

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// Common matcher errors.
var (
	// ErrNotImplemented is returned for operator keys outside the
	// recognised set.
	ErrNotImplemented = errors.New("operator not implemented")
	// ErrInvalidOperator is returned for malformed operator objects.
	ErrInvalidOperator = errors.New("invalid operator")
)

// Operator keys recognised by Value.
const (
	OpEq       = "eq"
	OpNe       = "ne"
	OpLt       = "lt"
	OpLte      = "lte"
	OpGt       = "gt"
	OpGte      = "gte"
	OpRe       = "re"
	OpEmpty    = "empty"
	OpLength   = "length"
	OpIncludes = "includes"
)

// Value reports whether value satisfies cond. cond is one of:
//   - a scalar: equality
//   - a list of scalars: membership
//   - an operator object with exactly one key (eq, ne, lt, lte, gt, gte,
//     re, empty, length, includes)
//
// The empty operator keeps its source semantics: it is true iff the value
// has length zero AND the operator argument is true, so empty:false never
// matches.
func Value(value any, cond any) (bool, error) {
	switch c := cond.(type) {
	case map[string]any:
		return applyOperator(value, c)
	case []any:
		for _, want := range c {
			if Equal(value, want) {
				return true, nil
			}
		}
		return false, nil
	default:
		return Equal(value, cond), nil
	}
}

func applyOperator(value any, op map[string]any) (bool, error) {
	if len(op) != 1 {
		return false, fmt.Errorf("%w: expected exactly one operator key, got %d", ErrInvalidOperator, len(op))
	}
	var key string
	var arg any
	for k, v := range op {
		key, arg = k, v
	}

	switch key {
	case OpEq:
		return Equal(value, arg), nil
	case OpNe:
		return !Equal(value, arg), nil
	case OpLt, OpLte, OpGt, OpGte:
		return compare(key, value, arg), nil
	case OpRe:
		return matchRegexp(value, arg)
	case OpEmpty:
		want, ok := arg.(bool)
		if !ok {
			return false, fmt.Errorf("%w: empty expects a bool argument, got %T", ErrInvalidOperator, arg)
		}
		n, ok := lengthOf(value)
		if !ok {
			return false, nil
		}
		return n == 0 && want, nil
	case OpLength:
		n, ok := lengthOf(value)
		if !ok {
			return false, nil
		}
		return Value(float64(n), arg)
	case OpIncludes:
		for _, item := range elementsOf(value) {
			if Equal(item, arg) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrNotImplemented, key)
	}
}

// Equal compares two values, coercing across Go numeric types so that an
// int stored on a record matches a float64 decoded from JSON.
func Equal(a, b any) bool {
	if af, ok := toFloat64(a); ok {
		bf, ok := toFloat64(b)
		return ok && af == bf
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

func compare(op string, value, arg any) bool {
	v, ok := toFloat64(value)
	if !ok {
		return false
	}
	a, ok := toFloat64(arg)
	if !ok {
		return false
	}
	switch op {
	case OpLt:
		return v < a
	case OpLte:
		return v <= a
	case OpGt:
		return v > a
	case OpGte:
		return v >= a
	}
	return false
}

func matchRegexp(value, arg any) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	switch pattern := arg.(type) {
	case *regexp.Regexp:
		return pattern.MatchString(s), nil
	case string:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("%w: re pattern %q: %v", ErrInvalidOperator, pattern, err)
		}
		return re.MatchString(s), nil
	default:
		return false, fmt.Errorf("%w: re expects a pattern string, got %T", ErrInvalidOperator, arg)
	}
}

// lengthOf returns the length of strings, slices, arrays and maps.
func lengthOf(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	if s, ok := value.(string); ok {
		return len(s), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// elementsOf returns the elements of a slice or array value, or nil when
// the value is not a collection.
func elementsOf(value any) []any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return nil
}

// toFloat64 converts the Go numeric types to float64 for comparison.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
