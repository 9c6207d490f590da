package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/store"
	"github.com/usestring/schemex/pkg/schema"
)

// maxInlineDocumentBytes caps documents read straight off disk by tools.
const maxInlineDocumentBytes = 32 << 20

// ExtractInput is the input for schemex_extract.
type ExtractInput struct {
	Path       string `json:"path,omitempty" jsonschema:"Path to an XML JSON or YAML document. Either path or content is required."`
	Content    string `json:"content,omitempty" jsonschema:"Inline document content. Either content or path is required."`
	Format     string `json:"format,omitempty" jsonschema:"Format of inline content: xml json or yaml (default: json). Ignored when path is set."`
	Name       string `json:"name,omitempty" jsonschema:"Schema name for inline content (default: document)"`
	SavePath   string `json:"save_path,omitempty" jsonschema:"Optional path to save the extracted schema to"`
	SaveFormat string `json:"save_format,omitempty" jsonschema:"Serialization format for save_path: json jsonschema or xsd (default: json)"`
	FullSchema bool   `json:"full_schema,omitempty" jsonschema:"Include the full schema (element tree and data nodes) in the response, not just the summary"`
}

// ExtractOutput is the output for schemex_extract.
type ExtractOutput struct {
	Summary SchemaSummary `json:"summary"`
	Schema  any           `json:"schema,omitempty"`
	Saved   string        `json:"saved,omitempty"`
}

// ToolExtract infers a structural schema from a single document.
func ToolExtract(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExtractInput) (*sdkmcp.CallToolResult, ExtractOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExtractInput) (*sdkmcp.CallToolResult, ExtractOutput, error) {
		if input.Path == "" && input.Content == "" {
			return nil, ExtractOutput{}, ErrInvalidInput("either path or content is required")
		}
		if input.Path != "" && input.Content != "" {
			return nil, ExtractOutput{}, ErrInvalidInput("path and content are mutually exclusive")
		}

		var (
			s   *schema.Schema
			err error
		)
		if input.Path != "" {
			s, err = d.Extractor.ExtractFile(input.Path)
			if err != nil {
				return nil, ExtractOutput{}, WrapExtractError(input.Path, err)
			}
		} else {
			s, err = d.ExtractContent(input.Content, input.Name, input.Format)
			if err != nil {
				return nil, ExtractOutput{}, WrapExtractError(input.Name, err)
			}
		}

		output := ExtractOutput{Summary: BuildSchemaSummary(s)}

		if input.SavePath != "" {
			format, err := store.ParseFormat(input.SaveFormat)
			if err != nil {
				return nil, ExtractOutput{}, ErrInvalidInput("save_format must be json, jsonschema, or xsd")
			}
			if err := d.Store.Save(s, input.SavePath, format); err != nil {
				return nil, ExtractOutput{}, WrapExtractError(input.SavePath, err)
			}
			output.Saved = input.SavePath
		}

		if input.FullSchema {
			v, err := SchemaToAny(s)
			if err != nil {
				return nil, ExtractOutput{}, err
			}
			output.Schema = v
		}

		return nil, output, nil
	}
}
