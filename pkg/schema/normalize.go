package schema

import "strings"

// Upper canonicalizes an asset symbol.
func Upper(s string) string {
	return strings.ToUpper(s)
}

// SymbolList canonicalizes a comma-separated symbol list: each segment is
// trimmed and uppercased, and empty segments are dropped.
func SymbolList(s string) string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, strings.ToUpper(p))
	}
	return strings.Join(out, ",")
}
