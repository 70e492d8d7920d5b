package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"unicode/utf8"
)

// Kind classifies a gateway failure. It is decided once, where the failure
// happens, so callers never inspect transport error types themselves.
type Kind int

const (
	// KindUnclassified covers failures that fit no other kind.
	KindUnclassified Kind = iota
	// KindHTTPStatus is a response with a non-2xx status.
	KindHTTPStatus
	// KindTimeout is a request that exceeded its deadline.
	KindTimeout
	// KindConnection is a backend that could not be reached.
	KindConnection
	// KindDecode is a 2xx response whose body is not JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindDecode:
		return "decode"
	default:
		return "unclassified"
	}
}

// detailLimit caps the raw body excerpt used when the body has no error field.
const detailLimit = 200

// Error is a failed backend call.
type Error struct {
	Kind   Kind
	Method string
	Path   string
	Status int    // set for KindHTTPStatus
	Detail string // error field of the body, or its first characters
	Body   []byte
	// Category names the failure for KindUnclassified (e.g. "Canceled").
	Category string
	Cause    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	prefix := strings.TrimSpace(e.Method + " " + e.Path)
	switch e.Kind {
	case KindHTTPStatus:
		if e.Detail == "" {
			return fmt.Sprintf("%s: status %d", prefix, e.Status)
		}
		return fmt.Sprintf("%s: status %d: %s", prefix, e.Status, e.Detail)
	default:
		if e.Cause == nil {
			return fmt.Sprintf("%s: %s", prefix, e.Kind)
		}
		return fmt.Sprintf("%s: %s: %v", prefix, e.Kind, e.Cause)
	}
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// KindOf returns the kind of a gateway error, or KindUnclassified for any other error.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return KindUnclassified
}

func statusError(method, path string, status int, body []byte) *Error {
	return &Error{
		Kind:   KindHTTPStatus,
		Method: method,
		Path:   path,
		Status: status,
		Detail: extractDetail(body),
		Body:   body,
	}
}

// extractDetail reads the "error" field of a JSON object body. A body that is
// not a JSON object yields its first detailLimit characters instead.
func extractDetail(body []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return truncate(string(body), detailLimit)
	}
	raw, ok := obj["error"]
	if !ok || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// transportError classifies a failure of http.Client.Do.
func transportError(method, path string, err error) *Error {
	e := &Error{Kind: KindUnclassified, Method: method, Path: path, Cause: err, Category: "TransportError"}

	var netErr net.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.Canceled):
		e.Category = "Canceled"
	case errors.Is(err, context.DeadlineExceeded):
		e.Kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		e.Kind = KindTimeout
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		e.Kind = KindConnection
	case errors.As(err, &dnsErr):
		e.Kind = KindConnection
	case errors.As(err, &opErr) && opErr.Op == "dial":
		e.Kind = KindConnection
	}
	return e
}
