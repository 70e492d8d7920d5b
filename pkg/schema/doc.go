// Package schema declares and enforces the input contract of each tool.
//
// A Schema is an ordered list of Fields. Each field has a Type (string, int,
// number or custom), an optional default, numeric bounds, string length
// bounds, an enumerated value set and a normalizer. Apply checks raw
// arguments (as decoded from JSON) against the schema and returns the
// normalized values; Decode copies them into a typed input struct.
//
// Basic usage:
//
//	in := schema.Schema{
//	    schema.IntField("portfolio_id", "Portfolio ID").WithDefault(1).Min(1),
//	    schema.StringField("symbols", "Comma-separated symbols").Require().
//	        Length(1, 200).Normalized(schema.SymbolList).NonEmpty(),
//	}
//
//	var args struct {
//	    PortfolioID int    `mapstructure:"portfolio_id"`
//	    Symbols     string `mapstructure:"symbols"`
//	}
//	if err := schema.Parse(in, raw, &args); err != nil {
//	    // err is an *AggregateError of *ValidationError
//	}
//
// Strings are trimmed before any check. Bounds are inclusive. A failing
// schema reports every failing field, not only the first one.
package schema
