package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/portfolio-mcp/pkg/registry"
)

// ServerName is advertised to MCP clients during initialization.
const ServerName = "portfolio-mcp"

// CatalogURI is the resource listing every registered tool.
const CatalogURI = "portfolio://tools"

const shutdownTimeout = 5 * time.Second

// Server exposes a tool registry as an MCP server.
type Server struct {
	registry  *registry.Registry
	mcpServer *server.MCPServer
	logger    *slog.Logger
	metrics   http.Handler
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsHandler serves h on /metrics in the HTTP transports.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a new MCP Server instance with every tool of reg.
func NewServer(reg *registry.Registry, version string, opts ...Option) *Server {
	s := &Server{
		registry: reg,
		logger:   slog.Default(),
		mcpServer: server.NewMCPServer(ServerName, version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Router returns the HTTP routes for transport ("sse" or "http").
// baseURL is the externally visible address SSE clients post messages to.
func (s *Server) Router(transport, baseURL string) (http.Handler, func(context.Context) error, error) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	var shutdown func(context.Context) error
	switch transport {
	case "sse":
		sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))
		r.Handle("/sse", corsMiddleware(sse.SSEHandler()))
		r.Handle("/message", corsMiddleware(sse.MessageHandler()))
		shutdown = sse.Shutdown
	case "http":
		streamable := server.NewStreamableHTTPServer(s.mcpServer)
		r.Handle("/mcp", corsMiddleware(streamable))
		shutdown = streamable.Shutdown
	default:
		return nil, nil, fmt.Errorf("unsupported HTTP transport %q", transport)
	}
	return r, shutdown, nil
}

// ServeHTTP serves transport on port until ctx is canceled, then shuts down gracefully.
func (s *Server) ServeHTTP(ctx context.Context, transport string, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	handler, closeTransport, err := s.Router(transport, baseURL)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening", "transport", transport, "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := closeTransport(shutdownCtx); err != nil {
			s.logger.Warn("transport shutdown failed", "err", err)
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"tools":  len(s.registry.List()),
	}); err != nil {
		s.logger.Error("health response encode failed", "err", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Mcp-Session-Id, Mcp-Protocol-Version")
		w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	for _, def := range s.registry.List() {
		s.mcpServer.AddTool(NewTool(def), s.handler(def.Name))
	}
}

// handler routes a tool call through the registry. The result is always a
// single text item; failures are reported in the text, not as protocol errors.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := s.registry.Invoke(ctx, name, request.GetArguments())
		return mcp.NewToolResultText(res.Text), nil
	}
}

type catalogEntry struct {
	Name        string               `json:"name"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Annotations registry.Annotations `json:"annotations"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Portfolio Tool Catalog",
		mcp.WithResourceDescription("Every portfolio tool with its title and behavioural hints"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		defs := s.registry.List()
		entries := make([]catalogEntry, 0, len(defs))
		for _, def := range defs {
			entries = append(entries, catalogEntry{
				Name:        def.Name,
				Title:       def.Title,
				Description: def.Description,
				Annotations: def.Annotations,
			})
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode tool catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CatalogURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
