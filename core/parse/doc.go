// Package parse converts LLM-supplied strings into strongly-typed Go values.
//
// The single entry point is [ParseStringAs], which handles primitive
// conversions directly and falls back to JSON unmarshaling with automatic
// repair of malformed JSON for structs, maps, and slices.
package parse
