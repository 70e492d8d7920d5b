package tui

import (
	"github.com/muesli/termenv"
)

// Styler colors CLI output. With colors disabled every method returns its input.
type Styler struct {
	profile termenv.Profile
}

// NewStyler detects the terminal color profile. color=false forces plain text.
func NewStyler(color bool) Styler {
	if !color {
		return Styler{profile: termenv.Ascii}
	}
	return Styler{profile: termenv.ColorProfile()}
}

// Error highlights a failure message.
func (s Styler) Error(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#f87171")).Bold().String()
}

// Name highlights an identifier.
func (s Styler) Name(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#818cf8")).Bold().String()
}

// Muted dims secondary text.
func (s Styler) Muted(text string) string {
	return s.profile.String(text).Faint().String()
}

// Tag renders a short label such as "read-only".
func (s Styler) Tag(text, color string) string {
	return s.profile.String("[" + text + "]").Foreground(s.profile.Color(color)).String()
}
