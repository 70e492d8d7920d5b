package tools

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
	"github.com/aretw0/portfolio-mcp/pkg/format"
	"github.com/aretw0/portfolio-mcp/pkg/gateway"
)

func get(path string, query url.Values) gateway.Request {
	return gateway.Request{Method: http.MethodGet, Path: path, Query: query}
}

func portfolioQuery(id int) url.Values {
	return url.Values{"portfolioId": {strconv.Itoa(id)}}
}

// HoldingsInput is the validated input of portfolio_get_holdings.
type HoldingsInput struct {
	PortfolioID    int                   `mapstructure:"portfolio_id"`
	ResponseFormat domain.ResponseFormat `mapstructure:"response_format"`
}

func (in HoldingsInput) Request() gateway.Request {
	return get("/api/ticker/portfolio", portfolioQuery(in.PortfolioID))
}

func (in HoldingsInput) View() format.View           { return format.ViewHoldings }
func (in HoldingsInput) Mode() domain.ResponseFormat { return in.ResponseFormat }
func (in HoldingsInput) Params() format.Params       { return format.Params{} }

// HistoryInput is the validated input of portfolio_get_history.
type HistoryInput struct {
	PortfolioID    int                   `mapstructure:"portfolio_id"`
	Days           int                   `mapstructure:"days"`
	ResponseFormat domain.ResponseFormat `mapstructure:"response_format"`
}

func (in HistoryInput) Request() gateway.Request {
	q := portfolioQuery(in.PortfolioID)
	q.Set("days", strconv.Itoa(in.Days))
	return get("/api/ticker/portfolio/history", q)
}

func (in HistoryInput) View() format.View           { return format.ViewHistory }
func (in HistoryInput) Mode() domain.ResponseFormat { return in.ResponseFormat }
func (in HistoryInput) Params() format.Params       { return format.Params{Days: in.Days} }

// ListPortfoliosInput is the validated input of portfolio_list_portfolios.
type ListPortfoliosInput struct {
	ResponseFormat domain.ResponseFormat `mapstructure:"response_format"`
}

func (in ListPortfoliosInput) Request() gateway.Request {
	return get("/api/portfolios", nil)
}

func (in ListPortfoliosInput) View() format.View           { return format.ViewPortfolios }
func (in ListPortfoliosInput) Mode() domain.ResponseFormat { return in.ResponseFormat }
func (in ListPortfoliosInput) Params() format.Params       { return format.Params{} }

// ListTransactionsInput is the validated input of portfolio_list_transactions.
// A nil PortfolioID lists transactions across all portfolios.
type ListTransactionsInput struct {
	PortfolioID    *int                  `mapstructure:"portfolio_id"`
	ResponseFormat domain.ResponseFormat `mapstructure:"response_format"`
}

func (in ListTransactionsInput) Request() gateway.Request {
	var q url.Values
	if in.PortfolioID != nil {
		q = portfolioQuery(*in.PortfolioID)
	}
	return get("/api/transactions", q)
}

func (in ListTransactionsInput) View() format.View           { return format.ViewTransactions }
func (in ListTransactionsInput) Mode() domain.ResponseFormat { return in.ResponseFormat }
func (in ListTransactionsInput) Params() format.Params       { return format.Params{} }

// CashflowInput is the validated input of portfolio_get_cashflow.
type CashflowInput struct {
	PortfolioID    int                   `mapstructure:"portfolio_id"`
	ResponseFormat domain.ResponseFormat `mapstructure:"response_format"`
}

func (in CashflowInput) Request() gateway.Request {
	return get("/api/cashflow", portfolioQuery(in.PortfolioID))
}

func (in CashflowInput) View() format.View           { return format.ViewCashflow }
func (in CashflowInput) Mode() domain.ResponseFormat { return in.ResponseFormat }
func (in CashflowInput) Params() format.Params       { return format.Params{} }

// TaxReportInput is the validated input of portfolio_get_tax_report.
type TaxReportInput struct {
	Year           int                   `mapstructure:"year"`
	PortfolioID    *int                  `mapstructure:"portfolio_id"`
	AssetStrategy  domain.TaxStrategy    `mapstructure:"asset_strategy"`
	CashStrategy   domain.TaxStrategy    `mapstructure:"cash_strategy"`
	ResponseFormat domain.ResponseFormat `mapstructure:"response_format"`
}

func (in TaxReportInput) Request() gateway.Request {
	q := url.Values{
		"year":          {strconv.Itoa(in.Year)},
		"assetStrategy": {string(in.AssetStrategy)},
		"cashStrategy":  {string(in.CashStrategy)},
	}
	if in.PortfolioID != nil {
		q.Set("portfolioId", strconv.Itoa(*in.PortfolioID))
	}
	return get("/api/tax/romania", q)
}

func (in TaxReportInput) View() format.View           { return format.ViewTaxReport }
func (in TaxReportInput) Mode() domain.ResponseFormat { return in.ResponseFormat }

func (in TaxReportInput) Params() format.Params {
	return format.Params{Year: in.Year, AssetStrategy: in.AssetStrategy, CashStrategy: in.CashStrategy}
}

// PricesInput is the validated input of portfolio_get_prices.
type PricesInput struct {
	Symbols string `mapstructure:"symbols"`
}

func (in PricesInput) Request() gateway.Request {
	return get("/api/prices/current", url.Values{"symbols": {in.Symbols}})
}

func (in PricesInput) View() format.View           { return format.ViewPrices }
func (in PricesInput) Mode() domain.ResponseFormat { return domain.FormatMarkdown }
func (in PricesInput) Params() format.Params       { return format.Params{Symbols: in.Symbols} }

// PriceHistoryInput is the validated input of portfolio_get_price_history.
type PriceHistoryInput struct {
	Symbols string `mapstructure:"symbols"`
	Start   int    `mapstructure:"start_timestamp"`
	End     int    `mapstructure:"end_timestamp"`
}

func (in PriceHistoryInput) Request() gateway.Request {
	return get("/api/prices", url.Values{
		"symbols": {in.Symbols},
		"start":   {strconv.Itoa(in.Start)},
		"end":     {strconv.Itoa(in.End)},
	})
}

func (in PriceHistoryInput) View() format.View           { return format.ViewPriceHistory }
func (in PriceHistoryInput) Mode() domain.ResponseFormat { return domain.FormatJSON }
func (in PriceHistoryInput) Params() format.Params       { return format.Params{Symbols: in.Symbols} }
