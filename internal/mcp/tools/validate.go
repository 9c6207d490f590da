package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/validate"
)

// ValidateInput is the input for schemex_validate.
type ValidateInput struct {
	SchemaPath string `json:"schema_path" jsonschema:"Path to the schema: a saved artifact (.schema.json) or a reference document to extract from"`
	Path       string `json:"path,omitempty" jsonschema:"Path to the document to validate. Either path or content is required."`
	Content    string `json:"content,omitempty" jsonschema:"Inline JSON content to validate. Either content or path is required."`
}

// ValidateOutput is the output for schemex_validate.
type ValidateOutput struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitzero"`
}

// ToolValidate checks a document against a schema.
func ToolValidate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, ValidateOutput, error) {
		if input.SchemaPath == "" {
			return nil, ValidateOutput{}, ErrInvalidInput("schema_path is required")
		}
		if input.Path == "" && input.Content == "" {
			return nil, ValidateOutput{}, ErrInvalidInput("either path or content is required")
		}

		s, err := d.ResolveSchema(input.SchemaPath)
		if err != nil {
			return nil, ValidateOutput{}, WrapExtractError(input.SchemaPath, err)
		}

		validator, err := validate.New(s)
		if err != nil {
			return nil, ValidateOutput{}, WrapExtractError(input.SchemaPath, err)
		}

		var result *validate.Result
		if input.Path != "" {
			result, err = validator.ValidateFile(input.Path)
			if err != nil {
				return nil, ValidateOutput{}, WrapExtractError(input.Path, err)
			}
		} else {
			result = validator.ValidateJSON([]byte(input.Content))
		}

		return nil, ValidateOutput{Valid: result.Valid, Errors: result.Errors}, nil
	}
}
