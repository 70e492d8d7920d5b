package format

import (
	"encoding/json"
	"sort"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
)

func renderPrices(payload json.RawMessage, p Params) (string, error) {
	var q domain.PriceQuote
	if err := decode(ViewPrices, payload, &q); err != nil {
		return "", err
	}

	symbols := make([]string, 0, len(q.Prices))
	for sym, price := range q.Prices {
		if price != nil {
			symbols = append(symbols, sym)
		}
	}
	if len(symbols) == 0 {
		return "No prices found for: " + p.Symbols, nil
	}
	sort.Strings(symbols)

	var out lines
	out.raw("# Current Prices")
	out.blank()
	for _, sym := range symbols {
		out.add("- **%s**: %s", sym, USD(*q.Prices[sym]))
	}
	return out.String(), nil
}

// renderPriceHistory always returns the structured form: a count and the raw series.
func renderPriceHistory(payload json.RawMessage, p Params) (string, error) {
	var series domain.PriceSeries
	if err := decode(ViewPriceHistory, payload, &series); err != nil {
		return "", err
	}
	if len(series.Prices) == 0 {
		return "No historical prices found for " + p.Symbols + " in that range.", nil
	}

	out, err := json.MarshalIndent(struct {
		Count  int               `json:"count"`
		Prices []json.RawMessage `json:"prices"`
	}{len(series.Prices), series.Prices}, "", "  ")
	if err != nil {
		return "", &ShapeError{View: ViewPriceHistory, Err: err}
	}
	return string(out), nil
}
