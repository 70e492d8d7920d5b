package tools

import (
	"github.com/aretw0/portfolio-mcp/pkg/domain"
	"github.com/aretw0/portfolio-mcp/pkg/schema"
)

func portfolioID(description string) schema.Field {
	return schema.IntField("portfolio_id", description).WithDefault(1).Min(1)
}

func optionalPortfolioID() schema.Field {
	return schema.IntField("portfolio_id", "Portfolio ID, or omit for all").Min(1)
}

func responseFormat() schema.Field {
	return schema.EnumField("response_format", "'markdown' for readable output, 'json' for raw data",
		domain.ResponseFormats()...).WithDefault(string(domain.FormatMarkdown))
}

func strategy(name, description string) schema.Field {
	return schema.EnumField(name, description, domain.TaxStrategies()...).WithDefault(string(domain.FIFO))
}

func transactionID(description string) schema.Field {
	return schema.IntField("transaction_id", description).Require().Min(1)
}

var (
	holdingsSchema = schema.Schema{
		portfolioID("Portfolio ID (default: 1)"),
		responseFormat(),
	}

	historySchema = schema.Schema{
		portfolioID("Portfolio ID (default: 1)"),
		schema.IntField("days", "Number of days of history (max 90)").WithDefault(7).Min(1).Max(90),
		responseFormat(),
	}

	listPortfoliosSchema = schema.Schema{
		responseFormat(),
	}

	listTransactionsSchema = schema.Schema{
		optionalPortfolioID(),
		responseFormat(),
	}

	transactionFields = schema.Schema{
		portfolioID("Portfolio ID"),
		schema.EnumField("type", "Transaction type: Deposit, Withdrawal, or Swap", domain.TransactionTypes()...).Require(),
		schema.StringField("datetime", "Transaction datetime as ISO string (e.g. '2025-01-15T10:30:00Z')").Require(),
		schema.StringField("to_asset", "Asset received (e.g. 'BTC', 'ETH', 'ADA')").Require().Length(1, 10).Normalized(schema.Upper),
		schema.NumberField("to_quantity", "Quantity received").Require().Min(0),
		schema.NumberField("to_price_usd", "Price per unit in USD at time of transaction"),
		schema.StringField("from_asset", "Asset sold (required for Swap)").Length(0, 10).Normalized(schema.Upper),
		schema.NumberField("from_quantity", "Quantity sold (required for Swap)").Min(0),
		schema.NumberField("from_price_usd", "Price per unit of sold asset in USD (required for Swap)"),
		schema.NumberField("fees_usd", "Transaction fees in USD"),
		schema.StringField("notes", "Optional notes").Length(0, 500),
	}

	addTransactionSchema = transactionFields

	updateTransactionSchema = append(schema.Schema{
		transactionID("Transaction ID to update"),
	}, transactionFields...)

	deleteTransactionSchema = schema.Schema{
		transactionID("Transaction ID to delete"),
	}

	cashflowSchema = schema.Schema{
		portfolioID("Portfolio ID"),
		responseFormat(),
	}

	taxReportSchema = schema.Schema{
		schema.IntField("year", "Tax year").WithDefault(2025).Min(2015).Max(2030),
		optionalPortfolioID(),
		strategy("asset_strategy", "Lot selection strategy for assets"),
		strategy("cash_strategy", "Lot selection strategy for cash"),
		responseFormat(),
	}

	pricesSchema = schema.Schema{
		schema.StringField("symbols", "Comma-separated asset symbols (e.g. 'BTC,ETH,ADA')").
			Require().Length(1, 200).Normalized(schema.SymbolList).NonEmpty(),
	}

	priceHistorySchema = schema.Schema{
		schema.StringField("symbols", "Comma-separated symbols (e.g. 'BTC,ETH')").
			Require().Length(1, 0).Normalized(schema.SymbolList).NonEmpty(),
		schema.IntField("start_timestamp", "Start date as Unix timestamp (seconds)").Require(),
		schema.IntField("end_timestamp", "End date as Unix timestamp (seconds)").Require(),
	}
)
