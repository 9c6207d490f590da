package schema

import (
	"fmt"
	"strings"
)

// Pretty renders a human-readable summary of the schema for terminal display.
func Pretty(s *Schema) string {
	var lines []string
	lines = append(lines,
		fmt.Sprintf("Schema: %s", s.Name),
		fmt.Sprintf("Type: %s", s.FileType),
		fmt.Sprintf("Version: %s", s.Version),
		fmt.Sprintf("Created: %s", s.CreatedAt),
		fmt.Sprintf("Total Elements: %d", s.TotalElements),
		fmt.Sprintf("Total Attributes: %d", s.TotalAttributes),
		fmt.Sprintf("Total Data Nodes: %d", s.TotalDataNodes),
		fmt.Sprintf("Max Depth: %d", s.MaxDepth),
		"",
	)

	if s.Description != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", s.Description), "")
	}

	if s.Root != nil {
		lines = append(lines, "Root Element:")
		lines = appendElementPretty(lines, s.Root, 2)
	}

	return strings.Join(lines, "\n")
}

func appendElementPretty(lines []string, e *Element, indent int) []string {
	pad := strings.Repeat(" ", indent)

	lines = append(lines,
		fmt.Sprintf("%sName: %s", pad, e.Name),
		fmt.Sprintf("%sType: %s", pad, e.DataType),
		fmt.Sprintf("%sRequired: %t", pad, e.Required),
	)

	if e.Description != "" {
		lines = append(lines, fmt.Sprintf("%sDescription: %s", pad, e.Description))
	}
	if len(e.Examples) > 0 {
		lines = append(lines, fmt.Sprintf("%sExamples: %v", pad, e.Examples))
	}

	if len(e.Attributes) > 0 {
		lines = append(lines, pad+"Attributes:")
		for _, name := range attributeNames(e) {
			attr := e.Attributes[name]
			lines = append(lines, fmt.Sprintf("%s  %s: %s (required: %t)", pad, name, attr.DataType, attr.Required))
		}
	}

	if len(e.Properties) > 0 {
		lines = append(lines, pad+"Properties:")
		for _, name := range propertyNames(e) {
			lines = append(lines, fmt.Sprintf("%s  %s:", pad, name))
			lines = appendElementPretty(lines, e.Properties[name], indent+4)
		}
	}

	if e.ArrayType != nil {
		lines = append(lines, pad+"Array Type:")
		lines = appendElementPretty(lines, e.ArrayType, indent+2)
	}

	return lines
}
