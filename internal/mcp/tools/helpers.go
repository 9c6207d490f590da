// Package tools contains MCP tool implementations for schemex.
package tools

import (
	"github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/pkg/schema"
)

// MIME type constant.
const MimeJSON = "application/json"

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// SchemaSummary is the compact view of a schema that tools return
// alongside (or instead of) the full artifact.
type SchemaSummary struct {
	Name            string `json:"name"`
	FileType        string `json:"file_type"`
	RootName        string `json:"root_name,omitempty"`
	TotalElements   int    `json:"total_elements"`
	TotalAttributes int    `json:"total_attributes"`
	TotalDataNodes  int    `json:"total_data_nodes"`
	MaxDepth        int    `json:"max_depth"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// BuildSchemaSummary creates a SchemaSummary from a schema.
func BuildSchemaSummary(s *schema.Schema) SchemaSummary {
	summary := SchemaSummary{
		Name:            s.Name,
		FileType:        s.FileType,
		TotalElements:   s.TotalElements,
		TotalAttributes: s.TotalAttributes,
		TotalDataNodes:  s.TotalDataNodes,
		MaxDepth:        s.MaxDepth,
		CreatedAt:       s.CreatedAt,
	}
	if s.Root != nil {
		summary.RootName = s.Root.Name
	}
	return summary
}

// SchemaToAny round-trips a schema through JSON so handlers can return it
// in an `any` output field without tripping schema inference on the SDK side.
func SchemaToAny(s *schema.Schema) (any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
