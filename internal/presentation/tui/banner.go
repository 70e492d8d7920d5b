package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the portfolio-mcp banner with its version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`  ___  ___  ___ _____ ___ ___  _    ___ ___`, "#34d399"},
		{` | _ \/ _ \| _ \_   _| __/ _ \| |  |_ _/ _ \`, "#10b981"},
		{` |  _/ (_) |   / | | | _| (_) | |__ | | (_) |`, "#059669"},
		{` |_|  \___/|_|_\ |_| |_| \___/|____|___\___/  mcp`, "#047857"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}
