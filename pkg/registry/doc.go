// Package registry holds the tool definitions and is the single boundary
// through which every tool invocation passes.
//
// A Registry validates arguments against each tool's schema before calling
// its handler, and turns any failure into the error text the tool returns.
package registry
