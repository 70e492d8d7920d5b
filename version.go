package portfolio

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the release of the portfolio-mcp module.
var Version = strings.TrimSpace(rawVersion)
