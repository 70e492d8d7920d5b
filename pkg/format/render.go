package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
)

// View identifies the backend payload a renderer understands.
type View int

const (
	ViewHoldings View = iota + 1
	ViewHistory
	ViewPortfolios
	ViewTransactions
	ViewCashflow
	ViewTaxReport
	ViewPrices
	ViewPriceHistory
)

var viewNames = map[View]string{
	ViewHoldings:     "holdings",
	ViewHistory:      "history",
	ViewPortfolios:   "portfolios",
	ViewTransactions: "transactions",
	ViewCashflow:     "cashflow",
	ViewTaxReport:    "tax report",
	ViewPrices:       "prices",
	ViewPriceHistory: "price history",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Params carries the invocation inputs some narratives quote back.
type Params struct {
	Days          int
	Year          int
	AssetStrategy domain.TaxStrategy
	CashStrategy  domain.TaxStrategy
	Symbols       string
}

// Renderer turns a payload into a narrative.
type Renderer func(payload json.RawMessage, p Params) (string, error)

// narratives is the dispatch table from view to narrative renderer.
var narratives = map[View]Renderer{
	ViewHoldings:     renderHoldings,
	ViewHistory:      renderHistory,
	ViewPortfolios:   renderPortfolios,
	ViewTransactions: renderTransactions,
	ViewCashflow:     renderCashflow,
	ViewTaxReport:    renderTaxReport,
	ViewPrices:       renderPrices,
	ViewPriceHistory: renderPriceHistory,
}

// Render produces the output string for a payload. Current prices are always
// narrative and price history is always structured; every other view
// follows mode.
func Render(view View, mode domain.ResponseFormat, payload json.RawMessage, p Params) (string, error) {
	if mode == domain.FormatJSON && view != ViewPrices && view != ViewPriceHistory {
		return Echo(payload)
	}
	render, ok := narratives[view]
	if !ok {
		return "", fmt.Errorf("format: no renderer for %s", view)
	}
	return render(payload, p)
}

// Echo re-indents a payload with two spaces. The result parses back to the same value.
func Echo(payload json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return "", &ShapeError{View: 0, Err: err}
	}
	return buf.String(), nil
}

// ShapeError reports a payload that does not have the shape its view expects.
type ShapeError struct {
	View View
	Err  error
}

func (e *ShapeError) Error() string {
	if e.View == 0 {
		return fmt.Sprintf("malformed payload: %v", e.Err)
	}
	return fmt.Sprintf("unexpected %s payload: %v", e.View, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Category names the failure for error reports.
func (e *ShapeError) Category() string { return "DecodeError" }

func decode(view View, payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return &ShapeError{View: view, Err: err}
	}
	return nil
}

// decodeList decodes a list payload. A falsy payload (null, false, 0, "",
// {} or []) is an empty list.
func decodeList[T any](view View, payload json.RawMessage) ([]T, error) {
	if falsy(payload) {
		return nil, nil
	}
	var items []T
	if err := decode(view, payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func falsy(payload json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// lines joins narrative lines the way every renderer does.
type lines []string

func (l *lines) add(format string, args ...any) {
	*l = append(*l, fmt.Sprintf(format, args...))
}

func (l *lines) blank() {
	*l = append(*l, "")
}

func (l lines) String() string {
	return strings.Join(l, "\n")
}

func (l *lines) raw(s string) {
	*l = append(*l, s)
}
