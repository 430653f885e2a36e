// Package bravesearch exposes Brave web search to LLM agents as a single
// tool named "brave_search".
//
// The [Toolkit] is a thin adapter around the Brave client: it resolves
// option fallbacks (construction-time fixed overrides beat per-call
// arguments), shapes the API response into a compact JSON document, and maps
// every failure into a JSON error string so the operation never raises past
// its own boundary. Construct it with [New], which requires a Brave API key
// either via [WithAPIKey] or the BRAVE_API_KEY environment variable.
package bravesearch
