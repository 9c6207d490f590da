// Package schema defines the data model for inferred document schemas:
// the DataType classification tags, the element/attribute tree summarizing a
// document's structure, the flat data-node list recording every observed
// value, and the serializers that project a schema into its persisted forms.
package schema

// DataType classifies a value or element. The set is closed; serializers
// switch exhaustively over it.
type DataType string

// Data type tags.
const (
	TypeString   DataType = "string"
	TypeInteger  DataType = "integer"
	TypeFloat    DataType = "float"
	TypeBoolean  DataType = "boolean"
	TypeObject   DataType = "object"
	TypeArray    DataType = "array"
	TypeNull     DataType = "null"
	TypeDate     DataType = "date"
	TypeDateTime DataType = "datetime"
	TypeUnknown  DataType = "unknown"
)

// Source document kinds carried on a Schema.
const (
	FileTypeXML  = "xml"
	FileTypeJSON = "json"
)

// Attribute describes an XML attribute (or attribute-like scalar metadata)
// attached to an element.
type Attribute struct {
	Name         string   `json:"name"`
	DataType     DataType `json:"data_type"`
	Required     bool     `json:"required"`
	DefaultValue string   `json:"default_value,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// Element is one node of the schema tree. Properties holds object children
// keyed by name, Attributes holds attribute declarations, and ArrayType
// describes the common item type when DataType is TypeArray.
//
// Invariants: ArrayType is set iff DataType is TypeArray; a non-empty
// Properties map implies DataType is TypeObject. The tree is strictly owned:
// no element is shared between parents or siblings.
type Element struct {
	Name        string   `json:"name"`
	DataType    DataType `json:"data_type"`
	Required    bool     `json:"required"`
	Description string   `json:"description,omitempty"`

	Properties map[string]*Element   `json:"properties,omitempty"`
	Attributes map[string]*Attribute `json:"attributes,omitempty"`
	ArrayType  *Element              `json:"array_type,omitempty"`

	// Constraint fields are carried through serialization but never inferred.
	MinValue  *float64 `json:"min_value,omitempty"`
	MaxValue  *float64 `json:"max_value,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`

	Occurrences int   `json:"occurrences"`
	Examples    []any `json:"examples,omitempty"`
}

// DataNode records one concrete position visited during extraction. Paths are
// unique within a single extraction and address nodes independently of the
// schema tree: object children append ".name", array items "[i]", attributes
// "@name", and text content "#text".
type DataNode struct {
	Path        string   `json:"path"`
	Name        string   `json:"name"`
	Value       any      `json:"value"`
	DataType    DataType `json:"data_type"`
	Depth       int      `json:"depth"`
	ParentPath  string   `json:"parent_path,omitempty"`
	IsLeaf      bool     `json:"is_leaf"`
	Description string   `json:"description,omitempty"`
}

// Schema is the artifact produced by one extraction: the element tree, the
// flat data-node list, and summary statistics. A Schema is immutable once
// built; merging produces a new Schema and never mutates its inputs.
type Schema struct {
	Name     string   `json:"name"`
	FileType string   `json:"file_type"`
	Root     *Element `json:"root_element"`

	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`

	TotalElements   int `json:"total_elements"`
	TotalAttributes int `json:"total_attributes"`
	TotalDataNodes  int `json:"total_data_nodes"`
	MaxDepth        int `json:"max_depth"`

	DataNodes []DataNode `json:"data_nodes"`
}
