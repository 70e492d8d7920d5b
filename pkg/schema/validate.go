package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
)

// Schema is the ordered list of fields a tool accepts.
type Schema []Field

// Field returns the declaration for name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Apply validates data against the schema and returns the normalized values.
// Strings are trimmed, defaults are filled for absent or null optional
// fields, and keys not declared in the schema are ignored. All failures are
// collected into an *AggregateError in declaration order.
func Apply(schema Schema, data map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(schema))
	var errs []error

	for _, field := range schema {
		raw, exists := data[field.Name]
		if !exists || raw == nil {
			if field.Required {
				errs = append(errs, &ValidationError{Key: field.Name, Reason: "required"})
			} else if field.Default != nil {
				out[field.Name] = field.Default
			}
			continue
		}

		value, err := field.check(raw)
		if err != nil {
			errs = append(errs, &ValidationError{
				Key:    field.Name,
				Reason: err.Error(),
				Value:  raw,
			})
			continue
		}
		out[field.Name] = value
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}

func (f Field) check(raw any) (any, error) {
	value, err := f.Type.Coerce(raw)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case string:
		v = strings.TrimSpace(v)
		n := utf8.RuneCountInString(v)
		if f.MinLen > 0 && n < f.MinLen {
			return nil, fmt.Errorf("length must be at least %d", f.MinLen)
		}
		if f.MaxLen > 0 && n > f.MaxLen {
			return nil, fmt.Errorf("length must be at most %d", f.MaxLen)
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, v) {
			return nil, fmt.Errorf("must be one of: %s", strings.Join(f.Enum, ", "))
		}
		if f.Normalize != nil {
			v = f.Normalize(v)
		}
		if f.NotEmpty && v == "" {
			return nil, fmt.Errorf("must not be empty")
		}
		return v, nil
	case int:
		return v, f.checkRange(float64(v))
	case float64:
		return v, f.checkRange(v)
	}
	return value, nil
}

func (f Field) checkRange(v float64) error {
	if f.Minimum != nil && v < *f.Minimum {
		return fmt.Errorf("must be >= %s", formatBound(*f.Minimum))
	}
	if f.Maximum != nil && v > *f.Maximum {
		return fmt.Errorf("must be <= %s", formatBound(*f.Maximum))
	}
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Decode copies values produced by Apply into the struct pointed to by out,
// matching keys against `mapstructure` tags.
func Decode(values map[string]any, out any) error {
	if err := mapstructure.Decode(values, out); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

// Parse applies the schema and decodes the result into out.
func Parse(schema Schema, data map[string]any, out any) error {
	values, err := Apply(schema, data)
	if err != nil {
		return err
	}
	return Decode(values, out)
}
