package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/query"
)

// QueryInput is the input for schemex_query.
type QueryInput struct {
	Path       string `json:"path" jsonschema:"Path to query: a saved artifact (.schema.json) or a JSON document"`
	Expression string `json:"expression" jsonschema:"JQ expression to evaluate, e.g. '.data_nodes[] | select(.data_type == \"integer\") | .path'"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Max values to return (default from server config)"`
}

// QueryOutput is the output for schemex_query.
type QueryOutput struct {
	Values   []any    `json:"values,omitzero"`
	Errors   []string `json:"errors,omitzero"`
	RawCount int      `json:"raw_count"`
}

// ToolQuery evaluates a JQ expression against a saved schema artifact or
// a raw JSON document.
func ToolQuery(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryInput) (*sdkmcp.CallToolResult, QueryOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryInput) (*sdkmcp.CallToolResult, QueryOutput, error) {
		if input.Path == "" {
			return nil, QueryOutput{}, ErrInvalidInput("path is required")
		}
		if input.Expression == "" {
			return nil, QueryOutput{}, ErrInvalidInput("expression is required")
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = d.Config.DefaultQueryLimit
		}

		var (
			result *query.Result
			err    error
		)
		if IsArtifactPath(input.Path) {
			s, loadErr := d.Store.Load(input.Path)
			if loadErr != nil {
				return nil, QueryOutput{}, WrapExtractError(input.Path, loadErr)
			}
			result, err = d.Query.QuerySchema(s, input.Expression, maxResults)
		} else {
			data, readErr := ReadDocument(input.Path, maxInlineDocumentBytes)
			if readErr != nil {
				return nil, QueryOutput{}, WrapExtractError(input.Path, readErr)
			}
			result, err = d.Query.Query(data, input.Expression, maxResults)
		}
		if err != nil {
			return nil, QueryOutput{}, ErrInvalidInput(err.Error())
		}

		return nil, QueryOutput{
			Values:   result.Values,
			Errors:   result.Errors,
			RawCount: result.RawCount,
		}, nil
	}
}
