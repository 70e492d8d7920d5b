package domain

import "fmt"

// Leg is one side of a transaction: the asset received or the asset given up.
// Quantity and PriceUSD are nil when the caller did not supply them.
type Leg struct {
	Asset    string
	Quantity *float64
	PriceUSD *float64
}

func (l Leg) empty() bool {
	return l.Asset == "" && l.Quantity == nil && l.PriceUSD == nil
}

func (l Leg) complete() bool {
	return l.Asset != "" && l.Quantity != nil && l.PriceUSD != nil
}

// Entry holds the fields every transaction kind carries.
type Entry struct {
	PortfolioID int
	Datetime    string
	To          Leg
	FeesUSD     *float64
	Notes       *string
}

// Transaction is a portfolio transaction ready to be sent to the backend.
// The concrete type is one of Deposit, Withdrawal or Swap.
type Transaction interface {
	Type() TransactionType
	Base() Entry
	// Body returns the JSON object the backend expects for this transaction.
	Body() map[string]any
}

// Deposit adds an asset to the portfolio. Source optionally records what was paid for it.
type Deposit struct {
	Entry
	Source *Leg
}

// Withdrawal removes an asset from the portfolio.
type Withdrawal struct {
	Entry
	Source *Leg
}

// Swap exchanges one asset for another.
type Swap struct {
	Entry
	From Leg
}

func (d Deposit) Type() TransactionType    { return TypeDeposit }
func (w Withdrawal) Type() TransactionType { return TypeWithdrawal }
func (s Swap) Type() TransactionType       { return TypeSwap }

func (d Deposit) Base() Entry    { return d.Entry }
func (w Withdrawal) Base() Entry { return w.Entry }
func (s Swap) Base() Entry       { return s.Entry }

func (d Deposit) Body() map[string]any    { return d.Entry.body(TypeDeposit, d.Source) }
func (w Withdrawal) Body() map[string]any { return w.Entry.body(TypeWithdrawal, w.Source) }
func (s Swap) Body() map[string]any       { return s.Entry.body(TypeSwap, &s.From) }

// Complete reports whether the swap names the asset, quantity and price it was paid with.
func (s Swap) Complete() bool {
	return s.From.complete()
}

func (e Entry) body(kind TransactionType, from *Leg) map[string]any {
	body := map[string]any{
		"portfolioId": e.PortfolioID,
		"type":        string(kind),
		"datetime":    e.Datetime,
		"toAsset":     e.To.Asset,
		"toQuantity":  0.0,
	}
	if e.To.Quantity != nil {
		body["toQuantity"] = *e.To.Quantity
	}
	if e.To.PriceUSD != nil {
		body["toPriceUsd"] = *e.To.PriceUSD
	}
	if from != nil {
		if from.Asset != "" {
			body["fromAsset"] = from.Asset
		}
		if from.Quantity != nil {
			body["fromQuantity"] = *from.Quantity
		}
		if from.PriceUSD != nil {
			body["fromPriceUsd"] = *from.PriceUSD
		}
	}
	if e.FeesUSD != nil {
		body["feesUsd"] = *e.FeesUSD
	}
	if e.Notes != nil {
		body["notes"] = *e.Notes
	}
	return body
}

// NewTransaction builds the variant for kind. A nil or empty from leg is
// dropped. When strict is set, a Swap must carry a complete from leg.
func NewTransaction(kind TransactionType, entry Entry, from *Leg, strict bool) (Transaction, error) {
	if from != nil && from.empty() {
		from = nil
	}
	switch kind {
	case TypeDeposit:
		return Deposit{Entry: entry, Source: from}, nil
	case TypeWithdrawal:
		return Withdrawal{Entry: entry, Source: from}, nil
	case TypeSwap:
		s := Swap{Entry: entry}
		if from != nil {
			s.From = *from
		}
		if strict && !s.Complete() {
			return nil, ErrIncompleteSwap
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, kind)
	}
}
