package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/usestring/schemex/pkg/schema"
)

// jsonRootPath is the path assigned to the document root. Children of the
// root use bare keys; deeper nodes are dot-joined.
const jsonRootPath = "root"

// JSONExtractor infers schemas from JSON documents. The zero value is ready
// to use; every extraction builds fresh walk state, so a single extractor is
// safe for sequential reuse.
type JSONExtractor struct{}

// NewJSON returns a JSON schema extractor.
func NewJSON() *JSONExtractor {
	return &JSONExtractor{}
}

// Extract infers a schema from the JSON document at path.
func (x *JSONExtractor) Extract(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return x.ExtractBytes(data, schemaName(path), fileModTime(path))
}

// ExtractBytes infers a schema from raw JSON content. The name becomes the
// schema name; createdAt may be empty.
func (x *JSONExtractor) ExtractBytes(data []byte, name, createdAt string) (*schema.Schema, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing JSON document: %w", err)
	}
	return x.ExtractValue(parsed, name, createdAt), nil
}

// ExtractValue infers a schema from an already-parsed document value. This is
// the entry point for formats normalized into the generic value tree (YAML).
func (x *JSONExtractor) ExtractValue(parsed any, name, createdAt string) *schema.Schema {
	w := &jsonWalk{propertyNames: make(map[string]int)}
	root := w.walk(parsed, jsonRootPath, 0, "")

	return &schema.Schema{
		Name:           name,
		FileType:       schema.FileTypeJSON,
		Root:           root,
		Version:        schemaVersion,
		CreatedAt:      createdAt,
		TotalElements:  len(w.propertyNames),
		TotalDataNodes: len(w.nodes),
		MaxDepth:       jsonMaxDepth(parsed, 0),
		DataNodes:      w.nodes,
	}
}

// jsonWalk accumulates per-extraction state. Counters live here rather than
// on the extractor so concurrent extractions never share mutable state.
type jsonWalk struct {
	propertyNames map[string]int
	nodes         []schema.DataNode
}

// walk visits one position: it emits the position's data node first
// (pre-order), then descends into children and returns the element schema.
func (w *jsonWalk) walk(v any, path string, depth int, parentPath string) *schema.Element {
	dt := Classify(v)
	name := pathName(path)

	w.nodes = append(w.nodes, schema.DataNode{
		Path:        path,
		Name:        name,
		Value:       v,
		DataType:    dt,
		Depth:       depth,
		ParentPath:  parentPath,
		IsLeaf:      dt != schema.TypeObject && dt != schema.TypeArray,
		Description: "Data node at path: " + path,
	})

	el := &schema.Element{
		Name:        name,
		DataType:    dt,
		Description: "Property: " + name,
		Occurrences: 1,
	}

	switch dt {
	case schema.TypeObject:
		obj := v.(map[string]any)
		if len(obj) == 0 {
			break
		}
		el.Properties = make(map[string]*schema.Element, len(obj))
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			w.propertyNames[k]++
			childPath := k
			if path != jsonRootPath {
				childPath = path + "." + k
			}
			el.Properties[k] = w.walk(obj[k], childPath, depth+1, path)
		}

	case schema.TypeArray:
		arr := v.([]any)
		if len(arr) == 0 {
			break
		}
		el.Occurrences = len(arr)

		first := w.walk(arr[0], fmt.Sprintf("%s[0]", path), depth+1, path)
		first.Name = "item"
		first.Description = "Property: item"
		el.ArrayType = first

		// The item schema comes from the first element only; subsequent
		// elements are compared by type and the first mismatch downgrades
		// the item type to unknown. All items still emit data nodes.
		mismatched := false
		for i, item := range arr[1:] {
			w.walk(item, fmt.Sprintf("%s[%d]", path, i+1), depth+1, path)
			if !mismatched && Classify(item) != first.DataType {
				first.DataType = schema.TypeUnknown
				mismatched = true
			}
		}

	case schema.TypeString, schema.TypeInteger, schema.TypeFloat, schema.TypeBoolean:
		el.Examples = []any{v}

	case schema.TypeNull:
		el.Description += " (nullable)"
	}

	return el
}

// jsonMaxDepth computes the maximum data-node depth of a parsed document,
// independently of the walk's per-node bookkeeping.
func jsonMaxDepth(v any, depth int) int {
	max := depth
	switch val := v.(type) {
	case map[string]any:
		for _, child := range val {
			if d := jsonMaxDepth(child, depth+1); d > max {
				max = d
			}
		}
	case []any:
		for _, item := range val {
			if d := jsonMaxDepth(item, depth+1); d > max {
				max = d
			}
		}
	}
	return max
}
