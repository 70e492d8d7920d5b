package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	portfolio "github.com/aretw0/portfolio-mcp"
	"github.com/aretw0/portfolio-mcp/internal/config"
	"github.com/aretw0/portfolio-mcp/internal/logging"
	"github.com/aretw0/portfolio-mcp/pkg/classify"
	"github.com/aretw0/portfolio-mcp/pkg/gateway"
	"github.com/aretw0/portfolio-mcp/pkg/observability"
	"github.com/aretw0/portfolio-mcp/pkg/registry"
	"github.com/aretw0/portfolio-mcp/pkg/tools"
)

// errToolFailed marks a call whose output was an error text already printed.
var errToolFailed = errors.New("tool returned an error")

var rootCmd = &cobra.Command{
	Use:   "portfolio-mcp",
	Short: "MCP server for the Portfolio Tracker",
	Long: `portfolio-mcp exposes a Portfolio Tracker Web backend to AI agents as
Model Context Protocol tools: holdings, history, transactions, cash flow,
Romanian tax reports and crypto prices.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errToolFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file (default "+config.DefaultFile+" if present)")
	flags.String("env-file", ".env", "Path to a dotenv file preloaded into the environment")
	flags.String("api-url", "", "Portfolio Tracker base URL (overrides "+config.EnvAPIURL+")")
	flags.String("api-key", "", "Portfolio Tracker API key (overrides "+config.EnvAPIKey+")")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Bool("strict-swap", false, "Reject Swap transactions without from_asset, from_quantity and from_price_usd")
}

// loadConfig resolves the configuration and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	src := config.Sources{File: config.DefaultFile}
	if path, _ := flags.GetString("config"); path != "" {
		src = config.Sources{File: path, Required: true}
	}
	src.EnvFile, _ = flags.GetString("env-file")

	cfg, err := config.Load(src)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("api-url") {
		cfg.BaseURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("api-key") {
		cfg.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("strict-swap") {
		cfg.StrictSwap, _ = flags.GetBool("strict-swap")
	}
	if flags.Lookup("transport") != nil && flags.Changed("transport") {
		cfg.Transport, _ = flags.GetString("transport")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}

	return cfg, cfg.Validate()
}

// app is the wired tool server: one gateway client shared by every tool.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	metrics  *observability.Metrics
	client   *gateway.Client
	registry *registry.Registry
}

func newApp(cfg config.Config) (*app, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)
	slog.SetDefault(logger)

	metrics := observability.NewMetrics()
	client, err := gateway.New(cfg.BaseURL,
		gateway.WithAPIKey(cfg.APIKey),
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithLogger(logger),
		gateway.WithObserver(metrics),
		gateway.WithUserAgent("portfolio-mcp/"+portfolio.Version),
	)
	if err != nil {
		return nil, err
	}

	reg := registry.NewRegistry(
		registry.WithClassifier(classify.New(client.BaseURL())),
		registry.WithLogger(logger),
		registry.WithObserver(metrics),
	)
	if err := tools.Register(reg, client, tools.WithStrictSwap(cfg.StrictSwap)); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Debug("configured",
		"api_url", client.BaseURL(),
		"api_key", cfg.APIKey,
		"timeout", cfg.Timeout,
		"strict_swap", cfg.StrictSwap,
	)
	if cfg.APIKey == "" {
		logger.Warn("no API key configured; set " + config.EnvAPIKey)
	}

	return &app{cfg: cfg, logger: logger, metrics: metrics, client: client, registry: reg}, nil
}

// Close releases the backend connections.
func (a *app) Close() error {
	return a.client.Close()
}

// setup loads the configuration and wires the app for a command.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	return newApp(cfg)
}
