package domain

import (
	"bytes"
	"encoding/json"
)

// ID is a backend identifier. The backend sends numbers for most entities,
// but the value is kept as its literal text so it can be echoed unchanged.
type ID string

// UnmarshalJSON accepts a JSON number, string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		*id = ID(data)
	}
	return nil
}

// String returns the identifier, or "?" when the backend did not send one.
func (id ID) String() string {
	if id == "" {
		return "?"
	}
	return string(id)
}

// Count is an integer total reported by the backend, kept in its literal form.
type Count struct{ ID }

// String returns the count, or "0" when absent.
func (c Count) String() string {
	if c.ID == "" {
		return "0"
	}
	return string(c.ID)
}

// HoldingsReport is the payload of GET /api/ticker/portfolio.
type HoldingsReport struct {
	Summary    HoldingsSummary `json:"summary"`
	Holdings   []Holding       `json:"holdings"`
	Allocation []Allocation    `json:"allocation"`
}

type HoldingsSummary struct {
	TotalValue           float64 `json:"totalValue"`
	TotalCost            float64 `json:"totalCost"`
	TotalPnl             float64 `json:"totalPnl"`
	TotalPnlPercent      float64 `json:"totalPnlPercent"`
	TotalChange7d        float64 `json:"totalChange7d"`
	TotalChange7dPercent float64 `json:"totalChange7dPercent"`
	BTCPrice             float64 `json:"btcPrice"`
}

type Holding struct {
	Asset           string  `json:"asset"`
	Quantity        float64 `json:"quantity"`
	CurrentPrice    float64 `json:"currentPrice"`
	CurrentValue    float64 `json:"currentValue"`
	CostBasis       float64 `json:"costBasis"`
	Pnl             float64 `json:"pnl"`
	PnlPercent      float64 `json:"pnlPercent"`
	Change7dPercent float64 `json:"change7dPercent"`
}

type Allocation struct {
	Asset      string  `json:"asset"`
	Percentage float64 `json:"percentage"`
	Value      float64 `json:"value"`
}

// HistoryReport is the payload of GET /api/ticker/portfolio/history.
type HistoryReport struct {
	History []HistoryPoint `json:"history"`
}

type HistoryPoint struct {
	Date       string  `json:"date"`
	TotalValue float64 `json:"totalValue"`
}

// Portfolio is one element of GET /api/portfolios.
type Portfolio struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// TransactionRecord is one element of GET /api/transactions.
type TransactionRecord struct {
	ID           ID      `json:"id"`
	Type         string  `json:"type"`
	Datetime     string  `json:"datetime"`
	ToAsset      string  `json:"toAsset"`
	ToQuantity   float64 `json:"toQuantity"`
	ToPriceUSD   float64 `json:"toPriceUsd"`
	FromAsset    string  `json:"fromAsset"`
	FromQuantity float64 `json:"fromQuantity"`
	FromPriceUSD float64 `json:"fromPriceUsd"`
	FeesUSD      float64 `json:"feesUsd"`
	Notes        string  `json:"notes"`
}

// Created is the payload returned by POST and PUT on /api/transactions.
type Created struct {
	ID ID `json:"id"`
}

// CashflowReport is the payload of GET /api/cashflow.
type CashflowReport struct {
	Summary    CashflowSummary     `json:"summary"`
	YearlyFlow map[string]YearFlow `json:"yearlyFlow"`
}

type CashflowSummary struct {
	TotalMoneyIn         float64 `json:"totalMoneyIn"`
	TotalMoneyOut        float64 `json:"totalMoneyOut"`
	NetMoneyFlow         float64 `json:"netMoneyFlow"`
	TotalBankDeposits    float64 `json:"totalBankDeposits"`
	TotalBankWithdrawals float64 `json:"totalBankWithdrawals"`
	NetBankFlow          float64 `json:"netBankFlow"`
	TotalAssetPurchases  float64 `json:"totalAssetPurchases"`
	TotalAssetSales      float64 `json:"totalAssetSales"`
	NetAssetTrading      float64 `json:"netAssetTrading"`
	TotalTaxableEvents   Count   `json:"totalTaxableEvents"`
	TotalTransactions    Count   `json:"totalTransactions"`
}

type YearFlow struct {
	NetFlow  *float64 `json:"netFlow"`
	TotalIn  float64  `json:"totalIn"`
	TotalOut float64  `json:"totalOut"`
}

// Net returns the explicit net flow when the backend sent one, else in minus out.
func (y YearFlow) Net() float64 {
	if y.NetFlow != nil {
		return *y.NetFlow
	}
	return y.TotalIn - y.TotalOut
}

// TaxReport is the payload of GET /api/tax/romania.
type TaxReport struct {
	TotalWithdrawalsUSD float64        `json:"totalWithdrawalsUsd"`
	TotalWithdrawalsRON float64        `json:"totalWithdrawalsRon"`
	TotalCostBasisUSD   float64        `json:"totalCostBasisUsd"`
	TotalCostBasisRON   float64        `json:"totalCostBasisRon"`
	TotalGainLossUSD    float64        `json:"totalGainLossUsd"`
	TotalGainLossRON    float64        `json:"totalGainLossRon"`
	TaxableEvents       []TaxableEvent `json:"taxableEvents"`
}

type TaxableEvent struct {
	Datetime      string  `json:"datetime"`
	TransactionID ID      `json:"transactionId"`
	GainLossUSD   float64 `json:"gainLossUsd"`
	GainLossRON   float64 `json:"gainLossRon"`
}

// PriceQuote is the payload of GET /api/prices/current.
// A nil price means the backend has no quote for that symbol.
type PriceQuote struct {
	Prices map[string]*float64 `json:"prices"`
}

// PriceSeries is the payload of GET /api/prices. Entries are echoed verbatim.
type PriceSeries struct {
	Prices []json.RawMessage `json:"prices"`
}
