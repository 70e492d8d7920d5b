// Package classify turns any failure of a tool invocation into the single
// user-facing string the tool returns.
package classify

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/portfolio-mcp/pkg/domain"
	"github.com/aretw0/portfolio-mcp/pkg/format"
	"github.com/aretw0/portfolio-mcp/pkg/gateway"
	"github.com/aretw0/portfolio-mcp/pkg/schema"
)

// Kinds reported by Kind.
const (
	KindValidation   = "validation"
	KindAuth         = "auth"
	KindPermission   = "permission"
	KindNotFound     = "not_found"
	KindRateLimited  = "rate_limited"
	KindBackend      = "backend"
	KindTimeout      = "timeout"
	KindConnection   = "connection"
	KindDecode       = "decode"
	KindUnclassified = "unclassified"
)

// Prefix starts every error message.
const Prefix = "Error: "

// categorized is implemented by errors that name their own category.
type categorized interface {
	Category() string
}

// Classifier renders errors for one backend address.
type Classifier struct {
	baseURL string
}

// New returns a Classifier whose connection messages name baseURL.
func New(baseURL string) *Classifier {
	return &Classifier{baseURL: baseURL}
}

// Message returns the error string for err. It never returns an empty string.
func (c *Classifier) Message(err error) string {
	if err == nil {
		return Prefix + "Unknown error."
	}

	if fields := schema.ValidationErrors(err); fields != nil {
		return Prefix + "Invalid input. " + validationDetail(fields)
	}

	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		switch gerr.Kind {
		case gateway.KindHTTPStatus:
			return statusMessage(gerr)
		case gateway.KindTimeout:
			return Prefix + "Request timed out. Is your Portfolio Tracker running?"
		case gateway.KindConnection:
			return fmt.Sprintf("%sCannot connect to %s. Make sure your Portfolio Tracker Web is running.", Prefix, c.baseURL)
		case gateway.KindDecode:
			return Prefix + "Unexpected response from backend: " + causeText(gerr)
		}
	}

	var shape *format.ShapeError
	if errors.As(err, &shape) {
		return Prefix + "Unexpected response from backend: " + shape.Error()
	}

	return fmt.Sprintf("%s%s: %s", Prefix, category(err), err.Error())
}

// Kind returns the taxonomy name of err.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	if schema.IsValidation(err) {
		return KindValidation
	}
	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		switch gerr.Kind {
		case gateway.KindHTTPStatus:
			switch gerr.Status {
			case http.StatusUnauthorized:
				return KindAuth
			case http.StatusForbidden:
				return KindPermission
			case http.StatusNotFound:
				return KindNotFound
			case http.StatusTooManyRequests:
				return KindRateLimited
			}
			return KindBackend
		case gateway.KindTimeout:
			return KindTimeout
		case gateway.KindConnection:
			return KindConnection
		case gateway.KindDecode:
			return KindDecode
		}
	}
	var shape *format.ShapeError
	if errors.As(err, &shape) {
		return KindDecode
	}
	return KindUnclassified
}

// IsError reports whether a tool output is an error string.
func IsError(text string) bool {
	return strings.HasPrefix(text, Prefix)
}

func statusMessage(e *gateway.Error) string {
	switch e.Status {
	case http.StatusUnauthorized:
		return Prefix + "Authentication failed. Check your PORTFOLIO_API_KEY. Detail: " + e.Detail
	case http.StatusForbidden:
		return Prefix + "Permission denied. " + e.Detail
	case http.StatusNotFound:
		return Prefix + "Not found. " + e.Detail
	case http.StatusTooManyRequests:
		return Prefix + "Rate limit exceeded. Wait a moment and retry."
	default:
		return fmt.Sprintf("%sAPI returned status %d. %s", Prefix, e.Status, e.Detail)
	}
}

func validationDetail(fields []error) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		var ve *schema.ValidationError
		if errors.As(f, &ve) {
			parts = append(parts, ve.Key+": "+ve.Reason)
			continue
		}
		parts = append(parts, f.Error())
	}
	return strings.Join(parts, "; ")
}

func causeText(e *gateway.Error) string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Error()
}

func category(err error) string {
	var c categorized
	if errors.As(err, &c) {
		if name := c.Category(); name != "" {
			return name
		}
	}
	var gerr *gateway.Error
	if errors.As(err, &gerr) && gerr.Category != "" {
		return gerr.Category
	}
	if errors.Is(err, domain.ErrToolNotFound) {
		return "ToolNotFound"
	}
	return "UnexpectedError"
}
