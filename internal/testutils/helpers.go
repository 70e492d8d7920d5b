// Package testutils holds shared fixtures for package tests: a recording
// backend, a stub HTTP backend and a quiet registry.
package testutils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/portfolio-mcp/internal/logging"
	"github.com/aretw0/portfolio-mcp/pkg/classify"
	"github.com/aretw0/portfolio-mcp/pkg/gateway"
	"github.com/aretw0/portfolio-mcp/pkg/registry"
)

// DefaultBaseURL is the backend address used when a test does not start a server.
const DefaultBaseURL = "http://localhost:3000"

// Backend records requests and answers each with a canned payload or error.
type Backend struct {
	mu       sync.Mutex
	requests []gateway.Request
	Payload  string
	Err      error
}

// Do implements the tools backend contract.
func (b *Backend) Do(ctx context.Context, req gateway.Request) (json.RawMessage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
	if b.Err != nil {
		return nil, b.Err
	}
	return json.RawMessage(b.Payload), nil
}

// Requests returns a copy of every request seen so far.
func (b *Backend) Requests() []gateway.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]gateway.Request(nil), b.requests...)
}

// Last returns the most recent request and fails the test if there is none.
func (b *Backend) Last(t *testing.T) gateway.Request {
	t.Helper()
	reqs := b.Requests()
	require.NotEmpty(t, reqs, "no backend request was made")
	return reqs[len(reqs)-1]
}

// NewRegistry returns a registry that classifies against baseURL and logs nothing.
func NewRegistry(baseURL string) *registry.Registry {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return registry.NewRegistry(
		registry.WithClassifier(classify.New(baseURL)),
		registry.WithLogger(logging.NewNop()),
	)
}

// NewServer starts an HTTP backend stub that is closed when the test ends.
func NewServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

// ClosedServerURL returns the address of a server that has already shut down,
// so connections to it are refused.
func ClosedServerURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	return addr
}

// NewClient returns a quiet gateway client for baseURL, closed when the test ends.
func NewClient(t *testing.T, baseURL string, opts ...gateway.Option) *gateway.Client {
	t.Helper()
	opts = append([]gateway.Option{gateway.WithLogger(logging.NewNop())}, opts...)
	client, err := gateway.New(baseURL, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}
