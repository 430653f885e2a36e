// Package cost provides cost and performance metadata for tool executions.
//
// [ToolMetrics] describes the per-call price and quality characteristics a
// tool advertises to agents; [Tracker] accumulates actual spend across a
// session. Both are intentionally provider-agnostic: any tool that knows its
// pricing can attach a ToolMetrics via tool.WithMetrics.
package cost
