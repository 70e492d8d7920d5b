// Package format turns backend payloads into the strings returned by tools.
//
// Structured mode echoes the payload re-indented. Narrative mode selects a
// renderer from a table keyed by View. Number helpers (USD, Percent,
// Quantity) are shared by every renderer so that a value is always printed
// the same way.
package format
