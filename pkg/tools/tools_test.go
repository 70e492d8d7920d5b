package tools

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/portfolio-mcp/internal/testutils"
	"github.com/aretw0/portfolio-mcp/pkg/classify"
	"github.com/aretw0/portfolio-mcp/pkg/gateway"
	"github.com/aretw0/portfolio-mcp/pkg/registry"
)

func setup(t *testing.T, payload string, opts ...Option) (*registry.Registry, *testutils.Backend) {
	t.Helper()
	backend := &testutils.Backend{Payload: payload}
	reg := testutils.NewRegistry("")
	require.NoError(t, Register(reg, backend, opts...))
	return reg, backend
}

func invoke(reg *registry.Registry, name string, args map[string]any) registry.Result {
	return reg.Invoke(context.Background(), name, args)
}

func TestRegister_DeclaresElevenTools(t *testing.T) {
	reg, _ := setup(t, `{}`)

	var names []string
	for _, def := range reg.List() {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Title, def.Name)
		assert.NotEmpty(t, def.Description, def.Name)
		assert.True(t, def.Annotations.OpenWorld, def.Name)
	}
	assert.Equal(t, []string{
		GetHoldings, GetHistory, ListPortfolios, ListTransactions,
		AddTransaction, UpdateTransaction, DeleteTransaction,
		GetCashflow, GetTaxReport, GetPrices, GetPriceHistory,
	}, names)

	add, _ := reg.Lookup(AddTransaction)
	assert.Equal(t, registry.Annotations{OpenWorld: true}, add.Annotations)
	del, _ := reg.Lookup(DeleteTransaction)
	assert.Equal(t, registry.Annotations{Destructive: true, Idempotent: true, OpenWorld: true}, del.Annotations)
	holdings, _ := reg.Lookup(GetHoldings)
	assert.True(t, holdings.Annotations.ReadOnly)
	assert.False(t, holdings.Annotations.Destructive)
}

func TestReadTools_BuildRequests(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		args      map[string]any
		wantPath  string
		wantQuery string
	}{
		{"holdings default portfolio", GetHoldings, nil, "/api/ticker/portfolio", "portfolioId=1"},
		{"holdings explicit portfolio", GetHoldings, map[string]any{"portfolio_id": 3.0}, "/api/ticker/portfolio", "portfolioId=3"},
		{"history defaults", GetHistory, map[string]any{}, "/api/ticker/portfolio/history", "days=7&portfolioId=1"},
		{"history days", GetHistory, map[string]any{"days": 30, "portfolio_id": 2}, "/api/ticker/portfolio/history", "days=30&portfolioId=2"},
		{"numeric strings", GetHistory, map[string]any{"days": "14", "portfolio_id": "2"}, "/api/ticker/portfolio/history", "days=14&portfolioId=2"},
		{"portfolios", ListPortfolios, nil, "/api/portfolios", ""},
		{"all transactions", ListTransactions, nil, "/api/transactions", ""},
		{"portfolio transactions", ListTransactions, map[string]any{"portfolio_id": 4}, "/api/transactions", "portfolioId=4"},
		{"cashflow", GetCashflow, nil, "/api/cashflow", "portfolioId=1"},
		{"tax defaults", GetTaxReport, nil, "/api/tax/romania", "assetStrategy=FIFO&cashStrategy=FIFO&year=2025"},
		{
			"tax explicit", GetTaxReport,
			map[string]any{"year": 2024, "portfolio_id": 2, "asset_strategy": "HIFO", "cash_strategy": "LIFO"},
			"/api/tax/romania", "assetStrategy=HIFO&cashStrategy=LIFO&portfolioId=2&year=2024",
		},
		{"prices", GetPrices, map[string]any{"symbols": " btc, eth ,,ada "}, "/api/prices/current", "symbols=BTC%2CETH%2CADA"},
		{
			"price history", GetPriceHistory,
			map[string]any{"symbols": "btc", "start_timestamp": 1700000000, "end_timestamp": 1702592000.0},
			"/api/prices", "end=1702592000&start=1700000000&symbols=BTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, backend := setup(t, `{}`)
			res := invoke(reg, tt.tool, tt.args)
			require.NoError(t, res.Err, res.Text)

			req := backend.Last(t)
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, tt.wantPath, req.Path)
			assert.Equal(t, tt.wantQuery, req.Query.Encode())
		})
	}
}

func TestReadTools_ResponseFormat(t *testing.T) {
	reg, _ := setup(t, `{"holdings":[],"summary":{"totalValue":0}}`)

	assert.Equal(t, "Portfolio is empty - no holdings found.", invoke(reg, GetHoldings, nil).Text)

	structured := invoke(reg, GetHoldings, map[string]any{"response_format": "json"})
	require.NoError(t, structured.Err)
	assert.JSONEq(t, `{"holdings":[],"summary":{"totalValue":0}}`, structured.Text)

	bad := invoke(reg, GetHoldings, map[string]any{"response_format": "yaml"})
	assert.Equal(t, "Error: Invalid input. response_format: must be one of: markdown, json", bad.Text)
}

func TestValidationNeverReachesBackend(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"portfolio below one", GetHoldings, map[string]any{"portfolio_id": 0}, "Error: Invalid input. portfolio_id: must be >= 1"},
		{"days above ninety", GetHistory, map[string]any{"days": 91}, "Error: Invalid input. days: must be <= 90"},
		{"year out of range", GetTaxReport, map[string]any{"year": 2014}, "Error: Invalid input. year: must be >= 2015"},
		{"unknown strategy", GetTaxReport, map[string]any{"cash_strategy": "AVG"}, "Error: Invalid input. cash_strategy: must be one of: FIFO, LIFO, HIFO, LOFO"},
		{"empty symbol list", GetPrices, map[string]any{"symbols": " , ,"}, "Error: Invalid input. symbols: must not be empty"},
		{"missing symbols", GetPriceHistory, map[string]any{"start_timestamp": 1, "end_timestamp": 2}, "Error: Invalid input. symbols: required"},
		{"fractional transaction id", DeleteTransaction, map[string]any{"transaction_id": 1.5}, ""},
		{
			"timestamp beyond int64", GetPriceHistory,
			map[string]any{"symbols": "BTC", "start_timestamp": 1e20, "end_timestamp": 2},
			"Error: Invalid input. start_timestamp: int out of range",
		},
		{"non-numeric string", GetHoldings, map[string]any{"portfolio_id": "two"}, `Error: Invalid input. portfolio_id: expected int, got "two"`},
		{
			"long notes", AddTransaction,
			map[string]any{"type": "Deposit", "datetime": "2025-01-15", "to_asset": "BTC", "to_quantity": 1, "notes": strings.Repeat("n", 501)},
			"Error: Invalid input. notes: length must be at most 500",
		},
		{
			"missing required transaction fields", AddTransaction, map[string]any{},
			"Error: Invalid input. type: required; datetime: required; to_asset: required; to_quantity: required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, backend := setup(t, `{}`)
			res := invoke(reg, tt.tool, tt.args)

			assert.Equal(t, classify.KindValidation, classify.Kind(res.Err))
			assert.True(t, classify.IsError(res.Text))
			if tt.want != "" {
				assert.Equal(t, tt.want, res.Text)
			}
			assert.Empty(t, backend.Requests())
		})
	}
}

func TestAddTransaction(t *testing.T) {
	reg, backend := setup(t, `{"id": 42}`)

	res := invoke(reg, AddTransaction, map[string]any{
		"type":         "Deposit",
		"datetime":     " 2025-01-15T10:30:00Z ",
		"to_asset":     " btc ",
		"to_quantity":  0.5,
		"to_price_usd": 67000,
	})
	require.NoError(t, res.Err, res.Text)
	assert.Equal(t, "Transaction created (ID: 42). Type: Deposit, Asset: 0.5 BTC @ $67,000.00", res.Text)

	req := backend.Last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/transactions", req.Path)
	assert.Equal(t, map[string]any{
		"portfolioId": 1,
		"type":        "Deposit",
		"datetime":    "2025-01-15T10:30:00Z",
		"toAsset":     "BTC",
		"toQuantity":  0.5,
		"toPriceUsd":  67000.0,
	}, req.Body)
}

func TestAddTransaction_LenientSwap(t *testing.T) {
	reg, backend := setup(t, ``)
	backend.Payload = `null`

	res := invoke(reg, AddTransaction, map[string]any{
		"type":        "Swap",
		"datetime":    "2025-03-01",
		"to_asset":    "ada",
		"to_quantity": 5000,
		"from_asset":  "eth",
		"notes":       "rebalance",
	})
	require.NoError(t, res.Err, res.Text)
	assert.Equal(t, "Transaction created (ID: ?). Type: Swap, Asset: 5000.0 ADA", res.Text)

	body := backend.Last(t).Body.(map[string]any)
	assert.Equal(t, "ETH", body["fromAsset"])
	assert.Equal(t, "rebalance", body["notes"])
	assert.NotContains(t, body, "fromQuantity")
	assert.NotContains(t, body, "fromPriceUsd")
}

func TestAddTransaction_StrictSwap(t *testing.T) {
	reg, backend := setup(t, `{"id": 1}`, WithStrictSwap(true))

	res := invoke(reg, AddTransaction, map[string]any{
		"type":        "Swap",
		"datetime":    "2025-03-01",
		"to_asset":    "ADA",
		"to_quantity": 5000,
		"from_asset":  "ETH",
	})
	assert.Equal(t, "Error: Invalid input. from_quantity: required for Swap; from_price_usd: required for Swap", res.Text)
	assert.Empty(t, backend.Requests())

	res = invoke(reg, AddTransaction, map[string]any{
		"type":           "Swap",
		"datetime":       "2025-03-01",
		"to_asset":       "ADA",
		"to_quantity":    5000,
		"from_asset":     "ETH",
		"from_quantity":  1,
		"from_price_usd": 3200,
	})
	require.NoError(t, res.Err, res.Text)

	res = invoke(reg, AddTransaction, map[string]any{
		"type":        "Deposit",
		"datetime":    "2025-03-01",
		"to_asset":    "BTC",
		"to_quantity": 1,
	})
	require.NoError(t, res.Err, res.Text)
}

func TestUpdateTransaction(t *testing.T) {
	reg, backend := setup(t, `{"id": 7}`)

	res := invoke(reg, UpdateTransaction, map[string]any{
		"transaction_id": 7,
		"portfolio_id":   2,
		"type":           "Withdrawal",
		"datetime":       "2025-02-01",
		"to_asset":       "usdc",
		"to_quantity":    1000,
		"fees_usd":       0.5,
	})
	require.NoError(t, res.Err, res.Text)
	assert.Equal(t, "Transaction 7 updated. Type: Withdrawal, Asset: 1000.0 USDC", res.Text)

	req := backend.Last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/transactions", req.Path)
	assert.Equal(t, map[string]any{
		"id":          7,
		"portfolioId": 2,
		"type":        "Withdrawal",
		"datetime":    "2025-02-01",
		"toAsset":     "USDC",
		"toQuantity":  1000.0,
		"feesUsd":     0.5,
	}, req.Body)
}

func TestDeleteTransaction(t *testing.T) {
	reg, backend := setup(t, `null`)

	res := invoke(reg, DeleteTransaction, map[string]any{"transaction_id": 12})
	require.NoError(t, res.Err, res.Text)
	assert.Equal(t, "Transaction 12 deleted successfully.", res.Text)

	req := backend.Last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "id=12", req.Query.Encode())
}

// The scenarios below run through a real gateway client.

func newGatewayRegistry(t *testing.T, baseURL string) *registry.Registry {
	t.Helper()
	client := testutils.NewClient(t, baseURL, gateway.WithAPIKey("wrong"))
	reg := testutils.NewRegistry(client.BaseURL())
	require.NoError(t, Register(reg, client))
	return reg
}

func TestGateway_AuthenticationFailure(t *testing.T) {
	addr := testutils.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wrong", r.Header.Get(gateway.APIKeyHeader))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error": "Invalid API key"}`)
	})

	res := invoke(newGatewayRegistry(t, addr), GetHoldings, nil)
	assert.Equal(t, "Error: Authentication failed. Check your PORTFOLIO_API_KEY. Detail: Invalid API key", res.Text)
	assert.Equal(t, classify.KindAuth, classify.Kind(res.Err))
}

func TestGateway_ConnectionRefused(t *testing.T) {
	addr := testutils.ClosedServerURL(t)

	res := invoke(newGatewayRegistry(t, addr), GetPrices, map[string]any{"symbols": "BTC"})
	assert.Equal(t, "Error: Cannot connect to "+addr+". Make sure your Portfolio Tracker Web is running.", res.Text)
}

func TestGateway_NarrativeRoundTrip(t *testing.T) {
	addr := testutils.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/prices/current", r.URL.Path)
		assert.Equal(t, "ETH,BTC", r.URL.Query().Get("symbols"))
		_, _ = io.WriteString(w, `{"prices": {"ETH": 3200.5, "BTC": 67000}}`)
	})

	res := invoke(newGatewayRegistry(t, addr), GetPrices, map[string]any{"symbols": "eth,btc"})
	require.NoError(t, res.Err)
	assert.Equal(t, "# Current Prices\n\n- **BTC**: $67,000.00\n- **ETH**: $3,200.50", res.Text)
}
