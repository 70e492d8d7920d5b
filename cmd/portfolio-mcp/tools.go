package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/portfolio-mcp/internal/presentation/tui"
	"github.com/aretw0/portfolio-mcp/pkg/registry"
	"github.com/aretw0/portfolio-mcp/pkg/schema"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		verbose, _ := cmd.Flags().GetBool("verbose")
		style := tui.NewStyler(isTerminal(cmd.OutOrStdout()))
		printTools(cmd.OutOrStdout(), style, a.registry.List(), verbose)
		return nil
	},
}

func init() {
	toolsCmd.Flags().BoolP("verbose", "v", false, "Show descriptions and parameters")
	rootCmd.AddCommand(toolsCmd)
}

func printTools(w io.Writer, style tui.Styler, defs []registry.Definition, verbose bool) {
	for _, def := range defs {
		fmt.Fprintf(w, "%s  %s %s\n", style.Name(def.Name), def.Title, hints(style, def.Annotations))
		if !verbose {
			continue
		}
		fmt.Fprintf(w, "    %s\n", style.Muted(def.Description))
		for _, f := range def.Schema {
			fmt.Fprintf(w, "    - %s\n", describeField(f))
		}
		fmt.Fprintln(w)
	}
}

func hints(style tui.Styler, a registry.Annotations) string {
	var tags []string
	if a.ReadOnly {
		tags = append(tags, style.Tag("read-only", "#22c55e"))
	}
	if a.Destructive {
		tags = append(tags, style.Tag("destructive", "#f87171"))
	}
	if a.Idempotent {
		tags = append(tags, style.Tag("idempotent", "#60a5fa"))
	}
	return strings.Join(tags, " ")
}

func describeField(f schema.Field) string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteString(" (")
	b.WriteString(f.Type.Name())
	switch {
	case f.Required:
		b.WriteString(", required")
	case f.Default != nil:
		fmt.Fprintf(&b, ", default %v", f.Default)
	}
	if len(f.Enum) > 0 {
		fmt.Fprintf(&b, ", one of %s", strings.Join(f.Enum, "|"))
	}
	b.WriteString(")")
	if f.Description != "" {
		b.WriteString(": ")
		b.WriteString(f.Description)
	}
	return b.String()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
