package schema

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema projects the schema tree into a JSON-Schema-like form. The
// projection is one-way: it is meant for downstream validators and display,
// not for reloading. Returns nil when the schema has no root element.
func ToJSONSchema(s *Schema) *jsonschema.Schema {
	if s == nil || s.Root == nil {
		return nil
	}
	return ElementToJSONSchema(s.Root)
}

// ElementToJSONSchema renders a single element (and its subtree) as a JSON
// Schema node. Every DataType maps to a declared type string; date, datetime
// and unknown degrade to "string".
func ElementToJSONSchema(e *Element) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:        jsonSchemaType(e.DataType),
		Description: e.Description,
	}

	switch e.DataType {
	case TypeObject:
		if len(e.Properties) == 0 {
			break
		}
		out.Properties = jsonschema.NewProperties()
		names := propertyNames(e)
		for _, name := range names {
			out.Properties.Set(name, ElementToJSONSchema(e.Properties[name]))
		}
		var required []string
		for _, name := range names {
			if e.Properties[name].Required {
				required = append(required, name)
			}
		}
		if len(required) > 0 {
			out.Required = required
		}

	case TypeArray:
		if e.ArrayType != nil {
			out.Items = ElementToJSONSchema(e.ArrayType)
		}

	case TypeString, TypeInteger, TypeFloat:
		if e.MinValue != nil {
			out.Minimum = json.Number(strconv.FormatFloat(*e.MinValue, 'f', -1, 64))
		}
		if e.MaxValue != nil {
			out.Maximum = json.Number(strconv.FormatFloat(*e.MaxValue, 'f', -1, 64))
		}
		if e.MinLength != nil && *e.MinLength >= 0 {
			v := uint64(*e.MinLength)
			out.MinLength = &v
		}
		if e.MaxLength != nil && *e.MaxLength >= 0 {
			v := uint64(*e.MaxLength)
			out.MaxLength = &v
		}
		if e.Pattern != "" {
			out.Pattern = e.Pattern
		}
	}

	return out
}

// jsonSchemaType maps a DataType to its JSON Schema type keyword.
func jsonSchemaType(dt DataType) string {
	switch dt {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeNull:
		return "null"
	case TypeDate, TypeDateTime, TypeUnknown:
		return "string"
	default:
		return "string"
	}
}

// propertyNames returns the element's property names in sorted order, the
// deterministic ordering used by all serializers and display output.
func propertyNames(e *Element) []string {
	names := make([]string, 0, len(e.Properties))
	for name := range e.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
