package domain

// ResponseFormat selects between the narrative and the structured rendering of a payload.
type ResponseFormat string

const (
	FormatMarkdown ResponseFormat = "markdown"
	FormatJSON     ResponseFormat = "json"
)

// ResponseFormats lists the accepted output modes, default first.
func ResponseFormats() []string {
	return []string{string(FormatMarkdown), string(FormatJSON)}
}

// TaxStrategy is the lot-selection rule used by the tax report.
type TaxStrategy string

const (
	FIFO TaxStrategy = "FIFO"
	LIFO TaxStrategy = "LIFO"
	HIFO TaxStrategy = "HIFO"
	LOFO TaxStrategy = "LOFO"
)

// TaxStrategies lists the accepted lot-selection strategies, default first.
func TaxStrategies() []string {
	return []string{string(FIFO), string(LIFO), string(HIFO), string(LOFO)}
}

// TransactionType is the kind of a portfolio transaction.
type TransactionType string

const (
	TypeDeposit    TransactionType = "Deposit"
	TypeWithdrawal TransactionType = "Withdrawal"
	TypeSwap       TransactionType = "Swap"
)

// TransactionTypes lists the accepted transaction kinds.
func TransactionTypes() []string {
	return []string{string(TypeDeposit), string(TypeWithdrawal), string(TypeSwap)}
}
