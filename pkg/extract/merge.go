package extract

import (
	"sort"

	"github.com/usestring/schemex/pkg/schema"
)

// mergedSchemaName names every schema produced by Merge.
const mergedSchemaName = "merged_schema"

// Merge combines schemas inferred from related documents into one
// generalized schema. Inputs are never mutated: the result is built from
// deep copies. A single-input merge returns a copy of that schema; an empty
// input fails with schema.ErrEmptyMergeInput.
//
// Statistics (total_elements and friends) are not recomputed after a merge;
// callers needing accurate post-merge statistics must re-derive them.
func Merge(schemas []*schema.Schema) (*schema.Schema, error) {
	if len(schemas) == 0 {
		return nil, schema.ErrEmptyMergeInput
	}
	if len(schemas) == 1 {
		return schemas[0].Clone(), nil
	}

	merged := schemas[0].Clone()
	merged.Name = mergedSchemaName

	roots := make([]*schema.Element, 0, len(schemas))
	for _, s := range schemas {
		if s.Root == nil {
			// A rootless input leaves the first schema's root untouched.
			return merged, nil
		}
		roots = append(roots, s.Root)
	}
	merged.Root = mergeElements(roots)

	return merged, nil
}

// mergeElements reconciles N element schemas into one. The first element
// supplies the scalar metadata (name, data type, array_type); properties and
// attributes are unioned across all inputs, merging recursively on name
// collisions, left to right. The array item schema is deliberately not
// deep-merged.
func mergeElements(elements []*schema.Element) *schema.Element {
	if len(elements) == 1 {
		return elements[0].Clone()
	}

	merged := elements[0].Clone()

	// Union of properties; colliding names merge recursively.
	byName := make(map[string][]*schema.Element)
	var order []string
	for _, el := range elements {
		for _, name := range sortedPropertyNames(el) {
			if _, seen := byName[name]; !seen {
				order = append(order, name)
			}
			byName[name] = append(byName[name], el.Properties[name])
		}
	}
	if len(order) > 0 {
		merged.Properties = make(map[string]*schema.Element, len(order))
		for _, name := range order {
			merged.Properties[name] = mergeElements(byName[name])
		}
	}

	// Union of attributes. An attribute is required only when every input
	// element carries it and marks it required: an attribute missing from
	// any contributing document cannot be globally required. The default
	// value comes from the first input that specifies one.
	attrNames := make(map[string]bool)
	var attrOrder []string
	for _, el := range elements {
		for name := range el.Attributes {
			if !attrNames[name] {
				attrNames[name] = true
				attrOrder = append(attrOrder, name)
			}
		}
	}
	if len(attrOrder) > 0 {
		merged.Attributes = make(map[string]*schema.Attribute, len(attrOrder))
		for _, name := range attrOrder {
			merged.Attributes[name] = mergeAttribute(name, elements)
		}
	}

	return merged
}

// mergeAttribute folds one attribute name across all input elements.
func mergeAttribute(name string, elements []*schema.Element) *schema.Attribute {
	var merged *schema.Attribute
	required := true

	for _, el := range elements {
		attr, ok := el.Attributes[name]
		if !ok {
			required = false
			continue
		}
		if merged == nil {
			merged = attr.Clone()
		}
		if !attr.Required {
			required = false
		}
		if merged.DefaultValue == "" && attr.DefaultValue != "" {
			merged.DefaultValue = attr.DefaultValue
		}
	}

	merged.Required = required
	return merged
}

func sortedPropertyNames(el *schema.Element) []string {
	names := make([]string, 0, len(el.Properties))
	for name := range el.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
