// Package utils provides shared low-level helpers used throughout the
// bravekit internals: an HTTP GET helper for JSON APIs, safe response-body
// closing, and generic pointer and string utilities.
//
// Key entry points: [DoGetJSON] for synchronous JSON round-trips,
// [CloseWithLog] for deferred closes, [JSONToString] for serialisation that
// is always safe to log, and [Ptr] for converting values to pointers.
package utils
