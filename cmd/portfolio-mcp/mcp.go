package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	portfolio "github.com/aretw0/portfolio-mcp"
	"github.com/aretw0/portfolio-mcp/internal/config"
	"github.com/aretw0/portfolio-mcp/internal/presentation/tui"
	"github.com/aretw0/portfolio-mcp/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the portfolio tools as an MCP Server.
This allows AI agents (like Claude Desktop) to query and update the portfolio.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP (/sse, /message).
- http: Uses the streamable HTTP transport (/mcp).

The HTTP transports also serve /health and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := mcp.NewServer(a.registry, portfolio.Version,
			mcp.WithLogger(a.logger),
			mcp.WithMetricsHandler(a.metrics.Handler()),
		)

		if a.cfg.Transport == config.TransportStdio {
			a.logger.Info("Starting portfolio MCP Server (Stdio)", "backend", a.client.BaseURL())
			return srv.ServeStdio()
		}

		tui.PrintBanner(os.Stderr, portfolio.Version)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.ServeHTTP(ctx, a.cfg.Transport, a.cfg.Port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", config.TransportStdio, "Transport: stdio, sse or http")
	mcpCmd.Flags().Int("port", 8080, "Port for the sse and http transports")
	rootCmd.AddCommand(mcpCmd)
}
