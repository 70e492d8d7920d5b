package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/portfolio-mcp/pkg/classify"
	"github.com/aretw0/portfolio-mcp/pkg/domain"
	"github.com/aretw0/portfolio-mcp/pkg/schema"
)

// Handler implements a tool. It receives the arguments already validated and
// normalized by the tool's schema and returns the output text.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Annotations are the behavioural hints advertised to MCP clients.
type Annotations struct {
	ReadOnly    bool `json:"readOnly"`
	Destructive bool `json:"destructive"`
	Idempotent  bool `json:"idempotent"`
	OpenWorld   bool `json:"openWorld"`
}

// Definition is a registered tool.
type Definition struct {
	Name        string
	Title       string
	Description string
	Schema      schema.Schema
	Annotations Annotations
	Handler     Handler
}

// Result is the outcome of an invocation. Text is always set; Err carries
// the failure that produced an error text, if any.
type Result struct {
	Text string
	Err  error
}

// Observer is notified once per invocation. Outcome is "ok" or a classify kind.
type Observer interface {
	ObserveInvocation(tool, outcome string, elapsed time.Duration)
}

// Registry manages the available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Definition
	order []string

	classifier *classify.Classifier
	logger     *slog.Logger
	observer   Observer
}

// Option configures a Registry.
type Option func(*Registry)

// WithClassifier sets the classifier that renders failures.
func WithClassifier(c *classify.Classifier) Option {
	return func(r *Registry) {
		if c != nil {
			r.classifier = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observer = o
	}
}

// NewRegistry creates a new empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tools:      make(map[string]Definition),
		classifier: classify.New(""),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool to the registry.
// If a tool with the same name exists, it is overwritten in place.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return errors.New("registry: tool name is empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("registry: tool %s has no handler", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = def
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// List returns every definition in registration order.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name])
	}
	return defs
}

// Invoke validates args, runs the named tool and returns its output.
// Every failure, including an unknown name or a panicking handler, is turned
// into an error text; Invoke itself never fails.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) Result {
	start := time.Now()
	text, err := r.execute(ctx, name, args)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		text = r.classifier.Message(err)
		outcome = classify.Kind(err)
	}

	switch {
	case err == nil:
		r.logger.Info("tool invoked", "tool", name, "outcome", outcome, "duration", elapsed)
	case outcome == classify.KindValidation:
		r.logger.Warn("tool input rejected", "tool", name, "err", err)
	default:
		r.logger.Error("tool failed", "tool", name, "outcome", outcome, "duration", elapsed, "err", err)
	}
	if r.observer != nil {
		r.observer.ObserveInvocation(name, outcome, elapsed)
	}

	return Result{Text: text, Err: err}
}

func (r *Registry) execute(ctx context.Context, name string, args map[string]any) (text string, err error) {
	def, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrToolNotFound, name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool panicked", "tool", name, "panic", rec, "stack", string(debug.Stack()))
			text, err = "", &PanicError{Tool: name, Value: rec}
		}
	}()

	values, err := schema.Apply(def.Schema, args)
	if err != nil {
		return "", err
	}
	return def.Handler(ctx, values)
}

// PanicError reports a handler that panicked.
type PanicError struct {
	Tool  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tool %s panicked: %v", e.Tool, e.Value)
}

func (e *PanicError) Category() string { return "InternalError" }
