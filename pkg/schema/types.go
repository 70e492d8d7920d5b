package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type defines the contract for field validation.
// Implementations accept the loosely typed values produced by JSON decoding
// and return the canonical Go value for the field.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Coerce checks that value conforms to this type and converts it.
	Coerce(value any) (any, error)
}

// --- Built-in Type Implementations ---

// StringType accepts string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Coerce(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", value)
	}
	return s, nil
}

// IntType accepts integer values and returns an int.
// Whole floats and numeric strings are converted.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Coerce(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float32:
		return wholeNumber(float64(v))
	case float64:
		// JSON numbers arrive as float64; accept whole values only
		return wholeNumber(v)
	case json.Number:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	default:
		return nil, fmt.Errorf("expected int, got %T", value)
	}
}

func parseInt(s string) (any, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("expected int, got %q", s)
	}
	return wholeNumber(f)
}

func wholeNumber(v float64) (any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil, fmt.Errorf("expected int, got float (not a whole number)")
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return nil, fmt.Errorf("int out of range")
	}
	return int(v), nil
}

// NumberType accepts any numeric value, or a numeric string, and returns a float64.
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Coerce(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return parseNumber(string(v))
	case string:
		return parseNumber(v)
	default:
		return nil, fmt.Errorf("expected number, got %T", value)
	}
}

func parseNumber(s string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fmt.Errorf("expected number, got %q", s)
	}
	return finite(f)
}

func finite(v float64) (any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("expected finite number")
	}
	return v, nil
}

// --- Factory Functions ---

// String creates a string type.
func String() Type { return &StringType{} }

// Int creates an integer type.
func Int() Type { return &IntType{} }

// Number creates a floating-point type.
func Number() Type { return &NumberType{} }
