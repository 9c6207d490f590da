package schema

import (
	"fmt"
	"sort"
	"strings"
)

// ToXSD renders the schema tree as an XSD-like document. The output is a
// textual projection only; it is never parsed back by this engine. Returns
// the empty string when the schema has no root element.
func ToXSD(s *Schema) string {
	if s == nil || s.Root == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<xs:schema xmlns:xs=\"http://www.w3.org/2001/XMLSchema\">\n")
	writeXSDElement(&b, s.Root, 2)
	b.WriteString("</xs:schema>")
	return b.String()
}

// writeXSDElement renders one element declaration at the given indent.
// Indentation is two spaces per nesting level.
func writeXSDElement(b *strings.Builder, e *Element, indent int) {
	pad := strings.Repeat(" ", indent)

	switch e.DataType {
	case TypeObject:
		fmt.Fprintf(b, "%s<xs:element name=%q>\n", pad, e.Name)
		fmt.Fprintf(b, "%s  <xs:complexType>\n", pad)

		if len(e.Properties) > 0 {
			fmt.Fprintf(b, "%s    <xs:sequence>\n", pad)
			for _, name := range propertyNames(e) {
				writeXSDElement(b, e.Properties[name], indent+6)
			}
			fmt.Fprintf(b, "%s    </xs:sequence>\n", pad)
		}

		for _, name := range attributeNames(e) {
			attr := e.Attributes[name]
			fmt.Fprintf(b, "%s    <xs:attribute name=%q type=\"xs:%s\"", pad, name, attr.DataType)
			if !attr.Required {
				b.WriteString(" use=\"optional\"")
			}
			if attr.DefaultValue != "" {
				fmt.Fprintf(b, " default=%q", attr.DefaultValue)
			}
			b.WriteString("/>\n")
		}

		fmt.Fprintf(b, "%s  </xs:complexType>\n", pad)
		fmt.Fprintf(b, "%s</xs:element>\n", pad)

	case TypeArray:
		itemType := TypeString
		if e.ArrayType != nil {
			itemType = e.ArrayType.DataType
		}
		fmt.Fprintf(b, "%s<xs:element name=%q>\n", pad, e.Name)
		fmt.Fprintf(b, "%s  <xs:complexType>\n", pad)
		fmt.Fprintf(b, "%s    <xs:sequence>\n", pad)
		fmt.Fprintf(b, "%s      <xs:element name=\"item\" type=\"xs:%s\" maxOccurs=\"unbounded\"/>\n", pad, itemType)
		fmt.Fprintf(b, "%s    </xs:sequence>\n", pad)
		fmt.Fprintf(b, "%s  </xs:complexType>\n", pad)
		fmt.Fprintf(b, "%s</xs:element>\n", pad)

	default:
		fmt.Fprintf(b, "%s<xs:element name=%q type=\"xs:%s\"", pad, e.Name, e.DataType)
		if !e.Required {
			b.WriteString(" minOccurs=\"0\"")
		}
		b.WriteString("/>\n")
	}
}

// attributeNames returns the element's attribute names in sorted order.
func attributeNames(e *Element) []string {
	names := make([]string, 0, len(e.Attributes))
	for name := range e.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
