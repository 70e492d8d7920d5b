/*
Package observability exposes Prometheus metrics for the portfolio tool server.

Metrics records one sample per tool invocation and one per backend request.
It implements registry.Observer and gateway.Observer, so a single value is
passed to both, and serves its own registry through Handler.
*/
package observability
