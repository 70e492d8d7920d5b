package schema

// Field declares one input of a tool: its type, default and constraints.
// Fields are values; the builder methods return modified copies.
type Field struct {
	Name        string
	Type        Type
	Description string
	Required    bool
	Default     any

	// Numeric bounds, inclusive. Nil means unbounded.
	Minimum *float64
	Maximum *float64

	// String length bounds in characters. Zero means unbounded.
	MinLen int
	MaxLen int

	// Enum restricts a string field to a closed value set.
	Enum []string

	// Normalize rewrites a string after trimming and length checks.
	Normalize func(string) string
	// NotEmpty rejects a string that is empty after normalization.
	NotEmpty bool
}

// StringField declares a string input.
func StringField(name, description string) Field {
	return Field{Name: name, Type: String(), Description: description}
}

// IntField declares an integer input.
func IntField(name, description string) Field {
	return Field{Name: name, Type: Int(), Description: description}
}

// NumberField declares a floating-point input.
func NumberField(name, description string) Field {
	return Field{Name: name, Type: Number(), Description: description}
}

// EnumField declares a string input restricted to values.
func EnumField(name, description string, values ...string) Field {
	return Field{Name: name, Type: String(), Description: description, Enum: values}
}

func (f Field) Require() Field {
	f.Required = true
	return f
}

func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

func (f Field) Min(v float64) Field {
	f.Minimum = &v
	return f
}

func (f Field) Max(v float64) Field {
	f.Maximum = &v
	return f
}

// Length bounds the string length; pass 0 to leave a side unbounded.
func (f Field) Length(min, max int) Field {
	f.MinLen, f.MaxLen = min, max
	return f
}

func (f Field) Normalized(fn func(string) string) Field {
	f.Normalize = fn
	return f
}

func (f Field) NonEmpty() Field {
	f.NotEmpty = true
	return f
}
