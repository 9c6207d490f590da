package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/nodeindex"
	"github.com/usestring/schemex/pkg/schema"
)

// FindNodesInput is the input for schemex_find_nodes.
type FindNodesInput struct {
	Paths    []string `json:"paths" jsonschema:"Documents or saved artifacts (.schema.json) whose data nodes to search"`
	Type     string   `json:"type,omitempty" jsonschema:"Filter by data type: string integer float boolean date datetime array object unknown"`
	Name     string   `json:"name,omitempty" jsonschema:"Filter by node name (exact match)"`
	LeafOnly bool     `json:"leaf_only,omitempty" jsonschema:"Only return leaf nodes"`
	MaxDepth int      `json:"max_depth,omitempty" jsonschema:"Only return nodes at or above this depth"`
	Limit    int      `json:"limit,omitempty" jsonschema:"Max nodes to return (default from server config)"`
}

// FindNodesOutput is the output for schemex_find_nodes.
type FindNodesOutput struct {
	Nodes      []schema.DataNode `json:"nodes,omitzero"`
	TotalFound int               `json:"total_found"`
	Truncated  bool              `json:"truncated"`
}

// ToolFindNodes searches extracted data nodes across one or more schemas
// using a bitmap index over type, name, and leaf dimensions.
func ToolFindNodes(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FindNodesInput) (*sdkmcp.CallToolResult, FindNodesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FindNodesInput) (*sdkmcp.CallToolResult, FindNodesOutput, error) {
		if len(input.Paths) == 0 {
			return nil, FindNodesOutput{}, ErrInvalidInput("paths is required")
		}

		ix := nodeindex.New()
		for _, p := range input.Paths {
			s, err := d.ResolveSchema(p)
			if err != nil {
				return nil, FindNodesOutput{}, WrapExtractError(p, err)
			}
			ix.Add(s)
		}

		nodes := ix.Find(nodeindex.Filter{
			Type:     schema.DataType(input.Type),
			Name:     input.Name,
			LeafOnly: input.LeafOnly,
			MaxDepth: input.MaxDepth,
		})

		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultNodeLimit
		}

		output := FindNodesOutput{TotalFound: len(nodes)}
		if len(nodes) > limit {
			nodes = nodes[:limit]
			output.Truncated = true
		}
		output.Nodes = nodes

		return nil, output, nil
	}
}
