package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txSchema = Schema{
	IntField("portfolio_id", "Portfolio ID").WithDefault(1).Min(1),
	EnumField("type", "Transaction type", "Deposit", "Withdrawal", "Swap").Require(),
	StringField("to_asset", "Asset received").Require().Length(1, 10).Normalized(Upper),
	NumberField("to_quantity", "Quantity received").Require().Min(0),
	StringField("notes", "Notes").Length(0, 500),
}

func TestApply_DefaultsAndNormalization(t *testing.T) {
	got, err := Apply(txSchema, map[string]any{
		"type":        "Deposit",
		"to_asset":    "  btc ",
		"to_quantity": 0.5,
		"extra":       "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"portfolio_id": 1,
		"type":         "Deposit",
		"to_asset":     "BTC",
		"to_quantity":  0.5,
	}, got)
}

func TestApply_NullTreatedAsAbsent(t *testing.T) {
	got, err := Apply(txSchema, map[string]any{
		"portfolio_id": nil,
		"type":         "Swap",
		"to_asset":     "ada",
		"to_quantity":  100,
		"notes":        nil,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got["portfolio_id"])
	assert.Equal(t, 100.0, got["to_quantity"])
	assert.NotContains(t, got, "notes")
}

func TestApply_CollectsAllFailures(t *testing.T) {
	_, err := Apply(txSchema, map[string]any{
		"portfolio_id": 0,
		"type":         "deposit",
		"to_asset":     "   ",
		"notes":        strings.Repeat("x", 501),
	})
	require.Error(t, err)

	var aggr *AggregateError
	require.True(t, errors.As(err, &aggr))

	keys := make([]string, 0, len(aggr.Errors))
	for _, e := range aggr.Errors {
		var ve *ValidationError
		require.True(t, errors.As(e, &ve))
		keys = append(keys, ve.Key)
	}
	assert.Equal(t, []string{"portfolio_id", "type", "to_asset", "to_quantity", "notes"}, keys)
}

func TestApply_Reasons(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		data   map[string]any
		reason string
	}{
		{"below minimum", Schema{IntField("days", "").Min(1).Max(90)}, map[string]any{"days": 0}, "must be >= 1"},
		{"above maximum", Schema{IntField("days", "").Min(1).Max(90)}, map[string]any{"days": 91}, "must be <= 90"},
		{"too long", Schema{StringField("s", "").Length(1, 3)}, map[string]any{"s": "abcd"}, "length must be at most 3"},
		{"too short", Schema{StringField("s", "").Length(1, 3)}, map[string]any{"s": " "}, "length must be at least 1"},
		{"enum", Schema{EnumField("f", "", "json", "markdown")}, map[string]any{"f": "xml"}, "must be one of: json, markdown"},
		{"empty after normalize", Schema{StringField("symbols", "").Length(1, 200).Normalized(SymbolList).NonEmpty()}, map[string]any{"symbols": " , ,"}, "must not be empty"},
		{"required", Schema{IntField("id", "").Require()}, map[string]any{}, "required"},
		{"fractional int", Schema{IntField("id", "")}, map[string]any{"id": 1.5}, "expected int, got float (not a whole number)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(tt.schema, tt.data)
			errs := ValidationErrors(err)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.reason, errs[0].(*ValidationError).Reason)
		})
	}
}

func TestApply_BoundsAreInclusive(t *testing.T) {
	s := Schema{IntField("year", "").Min(2015).Max(2030)}
	for _, year := range []int{2015, 2030} {
		_, err := Apply(s, map[string]any{"year": year})
		assert.NoError(t, err, "year %d", year)
	}
}

func TestParse_DecodesIntoStruct(t *testing.T) {
	var in struct {
		PortfolioID int      `mapstructure:"portfolio_id"`
		Type        string   `mapstructure:"type"`
		ToAsset     string   `mapstructure:"to_asset"`
		ToQuantity  float64  `mapstructure:"to_quantity"`
		Notes       *string  `mapstructure:"notes"`
		Fees        *float64 `mapstructure:"fees_usd"`
	}
	err := Parse(txSchema, map[string]any{
		"portfolio_id": 3.0,
		"type":         "Withdrawal",
		"to_asset":     "usdc",
		"to_quantity":  1000,
		"notes":        " rent ",
	}, &in)
	require.NoError(t, err)

	assert.Equal(t, 3, in.PortfolioID)
	assert.Equal(t, "Withdrawal", in.Type)
	assert.Equal(t, "USDC", in.ToAsset)
	assert.Equal(t, 1000.0, in.ToQuantity)
	require.NotNil(t, in.Notes)
	assert.Equal(t, "rent", *in.Notes)
	assert.Nil(t, in.Fees)
}

func TestSchema_Field(t *testing.T) {
	f, ok := txSchema.Field("to_asset")
	require.True(t, ok)
	assert.Equal(t, 10, f.MaxLen)

	_, ok = txSchema.Field("missing")
	assert.False(t, ok)
}

func TestValidationError_String(t *testing.T) {
	tests := []struct {
		err  *ValidationError
		want string
	}{
		{
			&ValidationError{Key: "api_key", Reason: "required", Value: nil},
			`field "api_key": required`,
		},
		{
			&ValidationError{Key: "retries", Reason: "expected int, got string", Value: "invalid"},
			`field "retries": expected int, got string (got string)`,
		},
	}

	for _, tt := range tests {
		got := tt.err.Error()
		if got != tt.want {
			t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestAggregateError_String(t *testing.T) {
	aggr := &AggregateError{
		Errors: []error{
			&ValidationError{Key: "api_key", Reason: "required", Value: nil},
			&ValidationError{Key: "retries", Reason: "expected int", Value: "invalid"},
		},
	}

	result := aggr.Error()
	if !strings.Contains(result, "2 validation errors") {
		t.Errorf("AggregateError.Error() should mention 2 errors, got: %s", result)
	}
}

func TestValidationErrors(t *testing.T) {
	aggr := &AggregateError{
		Errors: []error{
			&ValidationError{Key: "api_key", Reason: "required", Value: nil},
		},
	}

	if errs := ValidationErrors(aggr); len(errs) != 1 {
		t.Errorf("ValidationErrors() = %d errors, want 1", len(errs))
	}

	single := &ValidationError{Key: "api_key", Reason: "required"}
	if errs := ValidationErrors(single); len(errs) != 1 {
		t.Errorf("ValidationErrors() on single error = %v, want one", errs)
	}

	if errs := ValidationErrors(errors.New("boom")); errs != nil {
		t.Errorf("ValidationErrors() on plain error = %v, want nil", errs)
	}
	assert.False(t, IsValidation(nil))
}
