package domain

import "errors"

// ErrToolNotFound is returned when an invocation names a tool that is not registered.
var ErrToolNotFound = errors.New("tool not found")

// ErrIncompleteSwap is returned when a Swap is missing the asset it was paid with
// and strict transaction checking is enabled.
var ErrIncompleteSwap = errors.New("swap requires from_asset, from_quantity and from_price_usd")

// ErrUnknownTransactionType is returned for a transaction kind outside Deposit, Withdrawal and Swap.
var ErrUnknownTransactionType = errors.New("unknown transaction type")
