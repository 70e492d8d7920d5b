/*
Package portfolio is a Model Context Protocol (MCP) tool server that gives AI agents
read and write access to a self-hosted Portfolio Tracker Web backend.

It exposes eleven tools covering holdings, value history, portfolios, transactions,
cash flow, Romanian tax reports and crypto prices. Every tool validates its input
against a declared schema, forwards exactly one HTTP request to the backend and
renders the answer as Markdown for people or as JSON for programs. Failures never
escape as protocol errors: they come back as text starting with "Error:".

# Architecture

The server is a thin, stateless layer. Tools hold no state between calls; the only
shared resource is the authenticated gateway client.

  - pkg/schema: declarative input fields, coercion and aggregated validation errors.
  - pkg/gateway: the backend HTTP client (API key header, timeout, error taxonomy).
  - pkg/format: Markdown and JSON renderers for every backend payload.
  - pkg/classify: maps any failure to the user-facing "Error: ..." text.
  - pkg/registry: tool definitions, dispatch and panic recovery.
  - pkg/tools: the eleven portfolio tools.
  - pkg/adapters/mcp: exposes the registry over stdio, SSE or streamable HTTP.

# Usage

The binary in cmd/portfolio-mcp wires everything from configuration:

	export PORTFOLIO_API_URL=http://localhost:3000
	export PORTFOLIO_API_KEY=...

	# Serve MCP over stdio (Claude Desktop, IDE agents)
	portfolio-mcp mcp

	# Serve over HTTP with /health and /metrics
	portfolio-mcp mcp --transport http --port 8080

	# Invoke one tool from the shell
	portfolio-mcp call portfolio_get_history days=30

Embedding the tools in another host takes a gateway client and a registry:

	client, err := gateway.New("http://localhost:3000", gateway.WithAPIKey(key))
	if err != nil {
		log.Fatal(err)
	}
	reg := registry.NewRegistry(registry.WithClassifier(classify.New(client.BaseURL())))
	if err := tools.Register(reg, client); err != nil {
		log.Fatal(err)
	}

	res := reg.Invoke(ctx, tools.GetHoldings, map[string]any{"portfolio_id": 1})
	fmt.Println(res.Text)
*/
package portfolio
