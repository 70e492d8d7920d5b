// Package tools declares the portfolio operations and registers them with a
// registry.Registry.
//
// Each operation is a typed input decoded from validated arguments, a
// deterministic backend request built from that input, and the renderer its
// payload is handed to.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
	"github.com/aretw0/portfolio-mcp/pkg/format"
	"github.com/aretw0/portfolio-mcp/pkg/gateway"
	"github.com/aretw0/portfolio-mcp/pkg/registry"
	"github.com/aretw0/portfolio-mcp/pkg/schema"
)

// Tool names.
const (
	GetHoldings       = "portfolio_get_holdings"
	GetHistory        = "portfolio_get_history"
	ListPortfolios    = "portfolio_list_portfolios"
	ListTransactions  = "portfolio_list_transactions"
	AddTransaction    = "portfolio_add_transaction"
	UpdateTransaction = "portfolio_update_transaction"
	DeleteTransaction = "portfolio_delete_transaction"
	GetCashflow       = "portfolio_get_cashflow"
	GetTaxReport      = "portfolio_get_tax_report"
	GetPrices         = "portfolio_get_prices"
	GetPriceHistory   = "portfolio_get_price_history"
)

// Backend executes a single request against the portfolio tracker.
// *gateway.Client implements it.
type Backend interface {
	Do(ctx context.Context, req gateway.Request) (json.RawMessage, error)
}

type options struct {
	strictSwap bool
}

// Option configures Register.
type Option func(*options)

// WithStrictSwap rejects Swap transactions that omit the asset, quantity or
// price they were paid with.
func WithStrictSwap(strict bool) Option {
	return func(o *options) {
		o.strictSwap = strict
	}
}

var (
	readOnly = registry.Annotations{ReadOnly: true, Idempotent: true, OpenWorld: true}
	additive = registry.Annotations{OpenWorld: true}
	rewrite  = registry.Annotations{Destructive: true, Idempotent: true, OpenWorld: true}
)

// Register adds every portfolio tool to reg, bound to backend.
func Register(reg *registry.Registry, backend Backend, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	for _, def := range definitions(backend, o) {
		if err := reg.Register(def); err != nil {
			return fmt.Errorf("register %s: %w", def.Name, err)
		}
	}
	return nil
}

// definitions returns the tool definitions in their advertised order.
func definitions(backend Backend, o options) []registry.Definition {
	return []registry.Definition{
		{
			Name:  GetHoldings,
			Title: "Get Portfolio Holdings & Summary",
			Description: "Get current portfolio holdings with P&L, allocation, and 7-day performance. " +
				"Includes per-asset quantity, price, value, cost basis and unrealized P&L. " +
				`This is the primary tool for answering "how's my portfolio doing?".`,
			Schema:      holdingsSchema,
			Annotations: readOnly,
			Handler:     reader[HoldingsInput](backend),
		},
		{
			Name:  GetHistory,
			Title: "Get Portfolio Value History",
			Description: "Get daily portfolio value history for charting trends over time. " +
				"Returns the total portfolio value for each day over the requested period.",
			Schema:      historySchema,
			Annotations: readOnly,
			Handler:     reader[HistoryInput](backend),
		},
		{
			Name:        ListPortfolios,
			Title:       "List Portfolios",
			Description: "List all portfolios belonging to the authenticated user, with their IDs and creation dates.",
			Schema:      listPortfoliosSchema,
			Annotations: readOnly,
			Handler:     reader[ListPortfoliosInput](backend),
		},
		{
			Name:  ListTransactions,
			Title: "List Transactions",
			Description: "List all transactions for a portfolio, ordered by date. " +
				"The markdown view shows the most recent 50; use json for the full list.",
			Schema:      listTransactionsSchema,
			Annotations: readOnly,
			Handler:     reader[ListTransactionsInput](backend),
		},
		{
			Name:  AddTransaction,
			Title: "Add Transaction",
			Description: "Add a new transaction (deposit, withdrawal, or swap) to a portfolio. " +
				"For swaps, provide from_asset, from_quantity, and from_price_usd.",
			Schema:      addTransactionSchema,
			Annotations: additive,
			Handler:     addTransaction(backend, o.strictSwap),
		},
		{
			Name:  UpdateTransaction,
			Title: "Update Transaction",
			Description: "Replace an existing transaction with new details. " +
				"Every field of the transaction is sent, so supply the complete record.",
			Schema:      updateTransactionSchema,
			Annotations: rewrite,
			Handler:     updateTransaction(backend, o.strictSwap),
		},
		{
			Name:        DeleteTransaction,
			Title:       "Delete Transaction",
			Description: "Delete a transaction by its ID. This is irreversible.",
			Schema:      deleteTransactionSchema,
			Annotations: rewrite,
			Handler:     deleteTransaction(backend),
		},
		{
			Name:  GetCashflow,
			Title: "Get Cash Flow Analysis",
			Description: "Analyze money flow: deposits, withdrawals, trading volume, and net flow, " +
				"with a yearly breakdown.",
			Schema:      cashflowSchema,
			Annotations: readOnly,
			Handler:     reader[CashflowInput](backend),
		},
		{
			Name:  GetTaxReport,
			Title: "Get Romania Tax Report",
			Description: "Generate a Romania crypto tax report for a specific year, " +
				"with totals in USD and RON and the taxable events behind them.",
			Schema:      taxReportSchema,
			Annotations: readOnly,
			Handler:     reader[TaxReportInput](backend),
		},
		{
			Name:        GetPrices,
			Title:       "Get Current Crypto Prices",
			Description: "Get current USD prices for one or more crypto assets.",
			Schema:      pricesSchema,
			Annotations: readOnly,
			Handler:     reader[PricesInput](backend),
		},
		{
			Name:  GetPriceHistory,
			Title: "Get Historical Prices",
			Description: "Get historical USD prices for assets over a date range. " +
				"Returns daily {asset, date, price_usd} entries between the start and end timestamps as JSON.",
			Schema:      priceHistorySchema,
			Annotations: readOnly,
			Handler:     reader[PriceHistoryInput](backend),
		},
	}
}

// query is a read operation: one GET rendered through a format.View.
type query interface {
	Request() gateway.Request
	View() format.View
	Mode() domain.ResponseFormat
	Params() format.Params
}

func reader[T any, P interface {
	*T
	query
}](backend Backend) registry.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		in := P(new(T))
		if err := schema.Decode(args, in); err != nil {
			return "", err
		}
		payload, err := backend.Do(ctx, in.Request())
		if err != nil {
			return "", err
		}
		return format.Render(in.View(), in.Mode(), payload, in.Params())
	}
}
