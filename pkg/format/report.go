package format

import (
	"encoding/json"
	"sort"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
)

// TaxEventLimit caps the taxable events listed in a narrative.
const TaxEventLimit = 30

func renderCashflow(payload json.RawMessage, _ Params) (string, error) {
	var r domain.CashflowReport
	if err := decode(ViewCashflow, payload, &r); err != nil {
		return "", err
	}
	s := r.Summary

	var out lines
	out.raw("# Cash Flow Analysis")
	out.blank()
	out.raw("## Summary")
	out.add("- **Total Money In:** %s", USD(s.TotalMoneyIn))
	out.add("- **Total Money Out:** %s", USD(s.TotalMoneyOut))
	out.add("- **Net Flow:** %s", USD(s.NetMoneyFlow))
	out.blank()
	out.add("- Bank Deposits: %s", USD(s.TotalBankDeposits))
	out.add("- Bank Withdrawals: %s", USD(s.TotalBankWithdrawals))
	out.add("- Net Bank Flow: %s", USD(s.NetBankFlow))
	out.blank()
	out.add("- Asset Purchases: %s", USD(s.TotalAssetPurchases))
	out.add("- Asset Sales: %s", USD(s.TotalAssetSales))
	out.add("- Net Trading: %s", USD(s.NetAssetTrading))
	out.blank()
	out.add("- Taxable Events: %s", s.TotalTaxableEvents)
	out.add("- Total Transactions: %s", s.TotalTransactions)

	if len(r.YearlyFlow) > 0 {
		years := make([]string, 0, len(r.YearlyFlow))
		for year := range r.YearlyFlow {
			years = append(years, year)
		}
		sort.Strings(years)

		out.blank()
		out.raw("## Yearly Breakdown")
		out.blank()
		for _, year := range years {
			out.add("- **%s**: Net %s", year, USD(r.YearlyFlow[year].Net()))
		}
	}

	return out.String(), nil
}

func renderTaxReport(payload json.RawMessage, p Params) (string, error) {
	var r domain.TaxReport
	if err := decode(ViewTaxReport, payload, &r); err != nil {
		return "", err
	}

	var out lines
	out.add("# Romania Tax Report - %d", p.Year)
	out.blank()
	out.add("**Strategy:** Asset=%s, Cash=%s", p.AssetStrategy, p.CashStrategy)
	out.blank()
	out.raw("## Totals")
	out.add("- **Total Withdrawals (USD):** %s", USD(r.TotalWithdrawalsUSD))
	out.add("- **Total Withdrawals (RON):** %s RON", Grouped(r.TotalWithdrawalsRON, 2))
	out.add("- **Total Cost Basis (USD):** %s", USD(r.TotalCostBasisUSD))
	out.add("- **Total Cost Basis (RON):** %s RON", Grouped(r.TotalCostBasisRON, 2))
	out.add("- **Total Gain/Loss (USD):** %s", USD(r.TotalGainLossUSD))
	out.add("- **Total Gain/Loss (RON):** %s RON", Grouped(r.TotalGainLossRON, 2))
	out.blank()
	out.add("## Taxable Events (%d)", len(r.TaxableEvents))
	out.blank()

	shown := r.TaxableEvents
	if len(shown) > TaxEventLimit {
		shown = shown[:TaxEventLimit]
	}
	for _, ev := range shown {
		sign := ""
		if ev.GainLossUSD >= 0 {
			sign = "+"
		}
		out.add("- **%s** (TX #%s): Gain/Loss %s%s / %s%s RON",
			Day(ev.Datetime), ev.TransactionID,
			sign, USD(ev.GainLossUSD),
			sign, Grouped(ev.GainLossRON, 2))
	}

	if len(r.TaxableEvents) > TaxEventLimit {
		out.add("\n_Showing %d of %d events. Use JSON format for all._", TaxEventLimit, len(r.TaxableEvents))
	}
	return out.String(), nil
}
