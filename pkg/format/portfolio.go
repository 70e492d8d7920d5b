package format

import (
	"encoding/json"
	"strconv"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
)

const (
	// EmptyHoldings is returned instead of a summary when nothing is held.
	EmptyHoldings = "Portfolio is empty - no holdings found."
	// EmptyHistory is returned when the backend has no value history for the period.
	EmptyHistory = "No portfolio history available for this period."
	// EmptyPortfolios is returned when the user has no portfolios.
	EmptyPortfolios = "No portfolios found."
)

func renderHoldings(payload json.RawMessage, _ Params) (string, error) {
	var r domain.HoldingsReport
	if err := decode(ViewHoldings, payload, &r); err != nil {
		return "", err
	}
	if len(r.Holdings) == 0 {
		return EmptyHoldings, nil
	}

	s := r.Summary
	var out lines
	out.raw("# Portfolio Summary")
	out.blank()
	out.add("**Total Value:** %s", USD(s.TotalValue))
	out.add("**Total Cost:** %s", USD(s.TotalCost))
	out.add("**Total P&L:** %s (%s)", USD(s.TotalPnl), Percent(s.TotalPnlPercent))
	out.add("**7d Change:** %s (%s)", USD(s.TotalChange7d), Percent(s.TotalChange7dPercent))
	out.add("**BTC Price:** %s", USD(s.BTCPrice))
	out.blank()
	out.raw("## Holdings")
	out.blank()

	for _, h := range r.Holdings {
		sign := ""
		if h.Pnl >= 0 {
			sign = "+"
		}
		out.add("### %s", orUnknown(h.Asset))
		out.add("- Quantity: %s", Quantity(h.Quantity))
		out.add("- Price: %s", USD(h.CurrentPrice))
		out.add("- Value: %s", USD(h.CurrentValue))
		out.add("- Cost Basis: %s", USD(h.CostBasis))
		out.add("- P&L: %s%s (%s)", sign, USD(h.Pnl), Percent(h.PnlPercent))
		out.add("- 7d Change: %s", Percent(h.Change7dPercent))
		out.blank()
	}

	if len(r.Allocation) > 0 {
		out.raw("## Allocation")
		out.blank()
		for _, a := range r.Allocation {
			out.add("- **%s**: %s%% (%s)", orUnknown(a.Asset), strconv.FormatFloat(a.Percentage, 'f', 1, 64), USD(a.Value))
		}
		out.blank()
	}

	return out.String(), nil
}

func renderHistory(payload json.RawMessage, p Params) (string, error) {
	var r domain.HistoryReport
	if err := decode(ViewHistory, payload, &r); err != nil {
		return "", err
	}
	if len(r.History) == 0 {
		return EmptyHistory, nil
	}

	first, last := r.History[0], r.History[len(r.History)-1]
	change := last.TotalValue - first.TotalValue
	changePct := 0.0
	if first.TotalValue > 0 {
		changePct = change / first.TotalValue * 100
	}

	var out lines
	out.add("# Portfolio Value History (%d days)", p.Days)
	out.blank()
	out.add("**Period:** %s to %s", first.Date, last.Date)
	out.add("**Start:** %s | **End:** %s", USD(first.TotalValue), USD(last.TotalValue))
	out.add("**Change:** %s (%s)", USD(change), Percent(changePct))
	out.blank()
	for _, h := range r.History {
		out.add("- %s: %s", h.Date, USD(h.TotalValue))
	}
	return out.String(), nil
}

func renderPortfolios(payload json.RawMessage, _ Params) (string, error) {
	portfolios, err := decodeList[domain.Portfolio](ViewPortfolios, payload)
	if err != nil {
		return "", err
	}
	if len(portfolios) == 0 {
		return EmptyPortfolios, nil
	}

	var out lines
	out.raw("# Your Portfolios")
	out.blank()
	for _, p := range portfolios {
		created := p.CreatedAt
		if created == "" {
			created = "N/A"
		}
		out.add("- **%s** (ID: %s) - created %s", p.Name, p.ID, created)
	}
	return out.String(), nil
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
