package jsonschema

import (
	"reflect"
	"strconv"
	"strings"
)

// Schema represents the structure of JSON Schema used for defining arguments
// and responses. It follows the JSON Schema standard, supporting the subset
// of types, properties, and validation rules needed to describe tool inputs
// and outputs to a language model.
type Schema struct {
	// Type specifies the data type (e.g., "object", "array", "string", "number")
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of the arguments, each with its own schema
	Properties map[string]*Schema `json:"properties,omitempty"`
	// For array types, defines the schema of items in the array
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether properties not defined in Properties are allowed
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Default value for the parameter
	Default any `json:"default,omitempty"`
	// Enum contains the list of allowed values for the parameter
	Enum []any `json:"enum,omitempty"`
}

// GenerateJSONSchema derives a JSON schema from the type parameter T via
// reflection. Struct fields are mapped through their `json` tags; the
// `jsonschema` tag customizes the generated property schema:
//
//	type Input struct {
//	    Query string `json:"query" jsonschema:"description=The search query,required"`
//	    Count int    `json:"count,omitempty" jsonschema:"description=Result count,default=5"`
//	}
//
// Supported jsonschema tag directives: description=..., required,
// default=..., enum=a|b|c. Non-pointer fields without omitempty are required
// implicitly, matching the behavior language models expect from tool schemas.
func GenerateJSONSchema[T any]() *Schema {
	return generate(reflect.TypeFor[T]())
}

func generate(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return generate(t.Elem())

	case reflect.Struct:
		return generateStruct(t)

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: generate(t.Elem())}

	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: generate(t.Elem())}

	default:
		// Interfaces and anything else are left untyped; the model may send
		// any JSON value.
		return &Schema{}
	}
}

func generateStruct(t reflect.Type) *Schema {
	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		isOmitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				if commaIdx > 0 {
					fieldName = jsonTag[:commaIdx]
				}
				isOmitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				fieldName = jsonTag
			}
		}

		fieldSchema := generate(field.Type)
		isRequiredByTag := applyTag(field.Tag.Get("jsonschema"), field.Type, fieldSchema)
		schema.Properties[fieldName] = fieldSchema

		// Non-pointer fields without omitempty are required implicitly.
		if (field.Type.Kind() != reflect.Ptr && !isOmitEmpty) || isRequiredByTag {
			required = append(required, fieldName)
		}
	}

	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// applyTag parses a `jsonschema` struct tag and mutates fieldSchema in place.
// Returns true when the tag marks the field as required.
func applyTag(tag string, fieldType reflect.Type, fieldSchema *Schema) bool {
	if tag == "" {
		return false
	}

	isRequired := false
	for _, part := range strings.Split(tag, ",") {
		switch {
		case part == "required":
			isRequired = true

		case strings.HasPrefix(part, "description="):
			fieldSchema.Description = strings.TrimPrefix(part, "description=")

		case strings.HasPrefix(part, "default="):
			fieldSchema.Default = convertTagValue(strings.TrimPrefix(part, "default="), fieldType)

		case strings.HasPrefix(part, "enum="):
			raw := strings.Split(strings.TrimPrefix(part, "enum="), "|")
			enum := make([]any, 0, len(raw))
			for _, v := range raw {
				enum = append(enum, convertTagValue(v, fieldType))
			}
			fieldSchema.Enum = enum
		}
	}
	return isRequired
}

// convertTagValue coerces a tag literal to the field's Go kind so defaults
// and enums serialize with the right JSON type.
func convertTagValue(value string, fieldType reflect.Type) any {
	t := fieldType
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return value
}
