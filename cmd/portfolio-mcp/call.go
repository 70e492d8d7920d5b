package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/portfolio-mcp/internal/presentation/tui"
	"github.com/aretw0/portfolio-mcp/pkg/classify"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [key=value ...]",
	Short: "Invoke one tool and print its output",
	Long: `Invokes a tool locally against the configured backend, exactly as an MCP
client would, and prints the result.

Arguments are given as key=value pairs; values that parse as JSON (numbers,
booleans, quoted strings) keep their JSON type, anything else is a string.
--args accepts a JSON object instead. Markdown output is rendered when
stdout is a terminal unless --raw is set.

Example:
  portfolio-mcp call portfolio_get_history days=30
  portfolio-mcp call portfolio_get_prices symbols=btc,eth --raw`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawArgs, _ := cmd.Flags().GetString("args")
		toolArgs, err := parseCallArgs(args[1:], rawArgs)
		if err != nil {
			return err
		}

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res := a.registry.Invoke(cmd.Context(), args[0], toolArgs)

		out := cmd.OutOrStdout()
		raw, _ := cmd.Flags().GetBool("raw")
		tty := isTerminal(out)

		if classify.IsError(res.Text) {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.NewStyler(isTerminal(cmd.ErrOrStderr())).Error(res.Text))
			return errToolFailed
		}

		text := res.Text
		if tty && !raw && strings.HasPrefix(text, "#") {
			if rendered, err := tui.NewRenderer(0)(text); err == nil {
				text = rendered
			}
		}
		fmt.Fprintln(out, text)
		return nil
	},
}

func init() {
	callCmd.Flags().String("args", "", "Tool arguments as a JSON object")
	callCmd.Flags().Bool("raw", false, "Print the output without markdown rendering")
	rootCmd.AddCommand(callCmd)
}

// parseCallArgs merges a JSON object with key=value pairs; pairs win.
func parseCallArgs(pairs []string, rawJSON string) (map[string]any, error) {
	args := map[string]any{}
	if rawJSON != "" {
		if err := json.Unmarshal([]byte(rawJSON), &args); err != nil {
			return nil, fmt.Errorf("--args must be a JSON object: %w", err)
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", pair)
		}
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			args[key] = decoded
		} else {
			args[key] = value
		}
	}
	return args, nil
}
