package extract

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/usestring/schemex/pkg/schema"
)

// XMLExtractor infers schemas from XML documents parsed into an xmlquery
// node tree. The zero value is ready to use.
type XMLExtractor struct{}

// NewXML returns an XML schema extractor.
func NewXML() *XMLExtractor {
	return &XMLExtractor{}
}

// Extract infers a schema from the XML document at path.
func (x *XMLExtractor) Extract(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return x.ExtractBytes(data, schemaName(path), fileModTime(path))
}

// ExtractBytes infers a schema from raw XML content.
func (x *XMLExtractor) ExtractBytes(data []byte, name, createdAt string) (*schema.Schema, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML document: %w", err)
	}

	root := firstChildElement(doc)
	if root == nil {
		return nil, fmt.Errorf("parsing XML document: no root element")
	}

	w := &xmlWalk{
		elementNames:   make(map[string]int),
		attributeNames: make(map[string]int),
	}
	rootEl := w.walk(root, root.Data, 0, "")

	return &schema.Schema{
		Name:            name,
		FileType:        schema.FileTypeXML,
		Root:            rootEl,
		Version:         schemaVersion,
		CreatedAt:       createdAt,
		TotalElements:   len(w.elementNames),
		TotalAttributes: len(w.attributeNames),
		TotalDataNodes:  len(w.nodes),
		MaxDepth:        xmlMaxDepth(root, 0),
		DataNodes:       w.nodes,
	}, nil
}

// xmlWalk accumulates per-extraction state for one XML walk.
type xmlWalk struct {
	elementNames   map[string]int
	attributeNames map[string]int
	nodes          []schema.DataNode
}

// walk visits one element: it emits the element's data node first, then
// attribute and text nodes, then descends into child elements in document
// order. Repeated same-name siblings collapse into a single array-typed
// property whose item schema comes from the first occurrence; later
// occurrences contribute data nodes but their shape differences are
// discarded.
func (w *xmlWalk) walk(n *xmlquery.Node, path string, depth int, parentPath string) *schema.Element {
	name := n.Data
	w.elementNames[name]++

	children := childElements(n)
	text := directText(n)
	dt := xmlElementType(n, children, text)

	var value any
	if text != "" {
		value = text
	}
	w.nodes = append(w.nodes, schema.DataNode{
		Path:        path,
		Name:        name,
		Value:       value,
		DataType:    dt,
		Depth:       depth,
		ParentPath:  parentPath,
		IsLeaf:      dt != schema.TypeObject && dt != schema.TypeArray && len(children) == 0 && text == "",
		Description: "XML element: " + name,
	})

	el := &schema.Element{
		Name:        name,
		DataType:    dt,
		Description: "Element: " + name,
		Occurrences: 1,
	}

	for _, attr := range n.Attr {
		attrName := attr.Name.Local
		w.attributeNames[attrName]++

		if el.Attributes == nil {
			el.Attributes = make(map[string]*schema.Attribute)
		}
		// A single document gives no optionality signal, so attributes are
		// required by default; merging relaxes this.
		el.Attributes[attrName] = &schema.Attribute{
			Name:         attrName,
			DataType:     ClassifyText(attr.Value),
			Required:     true,
			DefaultValue: attr.Value,
			Description:  "Attribute: " + attrName,
		}

		w.nodes = append(w.nodes, schema.DataNode{
			Path:        path + "@" + attrName,
			Name:        attrName,
			Value:       attr.Value,
			DataType:    ClassifyText(attr.Value),
			Depth:       depth + 1,
			ParentPath:  path,
			IsLeaf:      true,
			Description: "Attribute: " + attrName,
		})
	}

	if text != "" {
		textType := ClassifyText(text)
		if textType != schema.TypeString {
			if el.Properties == nil {
				el.Properties = make(map[string]*schema.Element)
			}
			el.Properties["text"] = &schema.Element{
				Name:        "text",
				DataType:    textType,
				Occurrences: 1,
				Examples:    []any{text},
			}
		}

		w.nodes = append(w.nodes, schema.DataNode{
			Path:        path + "#text",
			Name:        "text",
			Value:       text,
			DataType:    textType,
			Depth:       depth + 1,
			ParentPath:  path,
			IsLeaf:      true,
			Description: "Text content of " + name,
		})
	}

	if len(children) > 0 {
		if el.Properties == nil {
			el.Properties = make(map[string]*schema.Element)
		}

		// Count siblings per tag up front: repeated tags get indexed paths
		// so no path is reused within one extraction.
		tagCounts := make(map[string]int)
		for _, c := range children {
			tagCounts[c.Data]++
		}

		seen := make(map[string]int)
		for _, c := range children {
			tag := c.Data
			idx := seen[tag]
			seen[tag]++

			childPath := path + "." + tag
			if tagCounts[tag] > 1 {
				childPath = fmt.Sprintf("%s.%s[%d]", path, tag, idx)
			}

			childEl := w.walk(c, childPath, depth+1, path)

			switch {
			case tagCounts[tag] == 1:
				el.Properties[tag] = childEl
			case idx == 0:
				el.Properties[tag] = &schema.Element{
					Name:        tag,
					DataType:    schema.TypeArray,
					ArrayType:   childEl,
					Occurrences: tagCounts[tag],
				}
			}
			// Later occurrences of a repeated tag only contribute data
			// nodes; their element schemas are dropped.
		}
	}

	return el
}

// xmlElementType determines an element's DataType: child elements make it an
// object, non-blank text makes it a string, attributes alone still make it an
// object, and an empty element is a string.
func xmlElementType(n *xmlquery.Node, children []*xmlquery.Node, text string) schema.DataType {
	switch {
	case len(children) > 0:
		return schema.TypeObject
	case text != "":
		return schema.TypeString
	case len(n.Attr) > 0:
		return schema.TypeObject
	default:
		return schema.TypeString
	}
}

// xmlMaxDepth computes the maximum data-node depth of the element tree,
// independently of the walk; attributes and text content sit one level below
// their element.
func xmlMaxDepth(n *xmlquery.Node, depth int) int {
	max := depth
	if len(n.Attr) > 0 || directText(n) != "" {
		max = depth + 1
	}
	for _, c := range childElements(n) {
		if d := xmlMaxDepth(c, depth+1); d > max {
			max = d
		}
	}
	return max
}

// childElements returns the direct element children in document order.
func childElements(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// directText returns the element's trimmed direct text content, empty when
// the element has none or it is all whitespace.
func directText(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// firstChildElement returns the first element child of a parsed document,
// skipping the XML declaration and comments.
func firstChildElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}
