// Package jsonschema derives JSON Schema documents from Go types via
// reflection. It supports the flat struct shapes used for tool inputs and
// outputs, honoring `json` tags for field naming and `jsonschema` tags for
// descriptions, required markers, defaults, and enums.
//
// The single entry point is [GenerateJSONSchema].
package jsonschema
