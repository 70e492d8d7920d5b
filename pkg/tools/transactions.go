package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
	"github.com/aretw0/portfolio-mcp/pkg/format"
	"github.com/aretw0/portfolio-mcp/pkg/gateway"
	"github.com/aretw0/portfolio-mcp/pkg/registry"
	"github.com/aretw0/portfolio-mcp/pkg/schema"
)

const transactionsPath = "/api/transactions"

// TransactionInput is the validated input of portfolio_add_transaction.
type TransactionInput struct {
	PortfolioID  int                    `mapstructure:"portfolio_id"`
	Type         domain.TransactionType `mapstructure:"type"`
	Datetime     string                 `mapstructure:"datetime"`
	ToAsset      string                 `mapstructure:"to_asset"`
	ToQuantity   float64                `mapstructure:"to_quantity"`
	ToPriceUSD   *float64               `mapstructure:"to_price_usd"`
	FromAsset    *string                `mapstructure:"from_asset"`
	FromQuantity *float64               `mapstructure:"from_quantity"`
	FromPriceUSD *float64               `mapstructure:"from_price_usd"`
	FeesUSD      *float64               `mapstructure:"fees_usd"`
	Notes        *string                `mapstructure:"notes"`
}

// Transaction builds the domain variant for the input. With strict set, a
// Swap missing any from field fails validation.
func (in TransactionInput) Transaction(strict bool) (domain.Transaction, error) {
	qty := in.ToQuantity
	entry := domain.Entry{
		PortfolioID: in.PortfolioID,
		Datetime:    in.Datetime,
		To:          domain.Leg{Asset: in.ToAsset, Quantity: &qty, PriceUSD: in.ToPriceUSD},
		FeesUSD:     in.FeesUSD,
		Notes:       in.Notes,
	}
	from := &domain.Leg{Quantity: in.FromQuantity, PriceUSD: in.FromPriceUSD}
	if in.FromAsset != nil {
		from.Asset = *in.FromAsset
	}

	tx, err := domain.NewTransaction(in.Type, entry, from, strict)
	if errors.Is(err, domain.ErrIncompleteSwap) {
		return nil, in.swapErrors()
	}
	return tx, err
}

func (in TransactionInput) swapErrors() error {
	var errs []error
	if in.FromAsset == nil || *in.FromAsset == "" {
		errs = append(errs, &schema.ValidationError{Key: "from_asset", Reason: "required for Swap"})
	}
	if in.FromQuantity == nil {
		errs = append(errs, &schema.ValidationError{Key: "from_quantity", Reason: "required for Swap"})
	}
	if in.FromPriceUSD == nil {
		errs = append(errs, &schema.ValidationError{Key: "from_price_usd", Reason: "required for Swap"})
	}
	return &schema.AggregateError{Errors: errs}
}

// UpdateInput is the validated input of portfolio_update_transaction.
type UpdateInput struct {
	TransactionID    int `mapstructure:"transaction_id"`
	TransactionInput `mapstructure:",squash"`
}

// DeleteInput is the validated input of portfolio_delete_transaction.
type DeleteInput struct {
	TransactionID int `mapstructure:"transaction_id"`
}

func (in DeleteInput) Request() gateway.Request {
	return gateway.Request{
		Method: http.MethodDelete,
		Path:   transactionsPath,
		Query:  url.Values{"id": {strconv.Itoa(in.TransactionID)}},
	}
}

func addTransaction(backend Backend, strict bool) registry.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		var in TransactionInput
		if err := schema.Decode(args, &in); err != nil {
			return "", err
		}
		tx, err := in.Transaction(strict)
		if err != nil {
			return "", err
		}

		payload, err := backend.Do(ctx, gateway.Request{Method: http.MethodPost, Path: transactionsPath, Body: tx.Body()})
		if err != nil {
			return "", err
		}
		return format.TransactionCreated(createdID(payload), tx), nil
	}
}

func updateTransaction(backend Backend, strict bool) registry.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		var in UpdateInput
		if err := schema.Decode(args, &in); err != nil {
			return "", err
		}
		tx, err := in.Transaction(strict)
		if err != nil {
			return "", err
		}

		body := tx.Body()
		body["id"] = in.TransactionID
		if _, err := backend.Do(ctx, gateway.Request{Method: http.MethodPut, Path: transactionsPath, Body: body}); err != nil {
			return "", err
		}
		return format.TransactionUpdated(in.TransactionID, tx), nil
	}
}

func deleteTransaction(backend Backend) registry.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		var in DeleteInput
		if err := schema.Decode(args, &in); err != nil {
			return "", err
		}
		if _, err := backend.Do(ctx, in.Request()); err != nil {
			return "", err
		}
		return format.TransactionDeleted(in.TransactionID), nil
	}
}

// createdID reads the id of a created transaction. A body without one yields
// the empty ID, shown as "?".
func createdID(payload json.RawMessage) domain.ID {
	var created domain.Created
	if err := json.Unmarshal(payload, &created); err != nil {
		return ""
	}
	return created.ID
}
