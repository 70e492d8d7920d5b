package format

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
)

const (
	// TransactionLimit caps the transactions listed in a narrative.
	TransactionLimit = 50
	// EmptyTransactions is returned when the backend has no transactions.
	EmptyTransactions = "No transactions found."
)

func renderTransactions(payload json.RawMessage, _ Params) (string, error) {
	txs, err := decodeList[domain.TransactionRecord](ViewTransactions, payload)
	if err != nil {
		return "", err
	}
	if len(txs) == 0 {
		return EmptyTransactions, nil
	}

	var out lines
	out.add("# Transactions (%d total)", len(txs))
	out.blank()

	shown := txs
	if len(shown) > TransactionLimit {
		shown = shown[len(shown)-TransactionLimit:]
	}
	for _, tx := range shown {
		out.raw(transactionLine(tx))
	}

	if len(txs) > TransactionLimit {
		out.add("\n_Showing last %d of %d transactions. Use JSON format for all._", TransactionLimit, len(txs))
	}
	return out.String(), nil
}

func transactionLine(tx domain.TransactionRecord) string {
	kind := orUnknown(tx.Type)

	var desc string
	switch domain.TransactionType(kind) {
	case domain.TypeSwap:
		desc = fmt.Sprintf("Swap %s %s -> %s %s",
			Quantity(tx.FromQuantity), orUnknown(tx.FromAsset),
			Quantity(tx.ToQuantity), orUnknown(tx.ToAsset))
	case domain.TypeDeposit:
		desc = fmt.Sprintf("Deposit %s %s", Quantity(tx.ToQuantity), orUnknown(tx.ToAsset))
		if tx.ToPriceUSD != 0 {
			desc += " @ " + USD(tx.ToPriceUSD)
		}
	default:
		desc = fmt.Sprintf("Withdraw %s %s", Quantity(tx.ToQuantity), orUnknown(tx.ToAsset))
	}

	fees := ""
	if tx.FeesUSD != 0 {
		fees = fmt.Sprintf(" (fees: %s)", USD(tx.FeesUSD))
	}
	notes := ""
	if tx.Notes != "" {
		notes = " - " + tx.Notes
	}
	return fmt.Sprintf("- **%s** [%s] %s%s%s (ID: %s)", Day(tx.Datetime), kind, desc, fees, notes, tx.ID)
}

// TransactionCreated confirms a new transaction.
func TransactionCreated(id domain.ID, tx domain.Transaction) string {
	return "Transaction created (ID: " + id.String() + "). " + transactionSummary(tx)
}

// TransactionUpdated confirms an edited transaction.
func TransactionUpdated(id int, tx domain.Transaction) string {
	return fmt.Sprintf("Transaction %d updated. %s", id, transactionSummary(tx))
}

// TransactionDeleted confirms a deletion.
func TransactionDeleted(id int) string {
	return fmt.Sprintf("Transaction %d deleted successfully.", id)
}

func transactionSummary(tx domain.Transaction) string {
	e := tx.Base()
	qty := 0.0
	if e.To.Quantity != nil {
		qty = *e.To.Quantity
	}
	s := fmt.Sprintf("Type: %s, Asset: %s %s", tx.Type(), Plain(qty), e.To.Asset)
	if e.To.PriceUSD != nil && *e.To.PriceUSD != 0 {
		s += " @ " + USD(*e.To.PriceUSD)
	}
	return s
}
