package tools

import (
	"context"

	"github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/store"
	schemapkg "github.com/usestring/schemex/pkg/schema"
)

// ConvertInput is the input for schemex_convert.
type ConvertInput struct {
	Path     string `json:"path" jsonschema:"Path to a saved schema artifact (.schema.json) or a raw document to extract first"`
	Format   string `json:"format" jsonschema:"Target format: json jsonschema or xsd"`
	SavePath string `json:"save_path,omitempty" jsonschema:"Optional path to save the rendered output to"`
}

// ConvertOutput is the output for schemex_convert.
type ConvertOutput struct {
	Format   string `json:"format"`
	Rendered string `json:"rendered"`
	Saved    string `json:"saved,omitempty"`
}

// ToolConvert renders a schema in one of the supported serialization formats.
func ToolConvert(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ConvertInput) (*sdkmcp.CallToolResult, ConvertOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ConvertInput) (*sdkmcp.CallToolResult, ConvertOutput, error) {
		if input.Path == "" {
			return nil, ConvertOutput{}, ErrInvalidInput("path is required")
		}

		format, err := store.ParseFormat(input.Format)
		if err != nil {
			return nil, ConvertOutput{}, ErrInvalidInput("format must be json, jsonschema, or xsd")
		}

		s, err := d.ResolveSchema(input.Path)
		if err != nil {
			return nil, ConvertOutput{}, WrapExtractError(input.Path, err)
		}

		var rendered string
		switch format {
		case store.FormatJSON:
			b, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return nil, ConvertOutput{}, err
			}
			rendered = string(b)
		case store.FormatJSONSchema:
			b, err := json.MarshalIndent(schemapkg.ToJSONSchema(s), "", "  ")
			if err != nil {
				return nil, ConvertOutput{}, err
			}
			rendered = string(b)
		case store.FormatXSD:
			rendered = schemapkg.ToXSD(s)
		}

		output := ConvertOutput{Format: string(format), Rendered: rendered}

		if input.SavePath != "" {
			if err := d.Store.Save(s, input.SavePath, format); err != nil {
				return nil, ConvertOutput{}, WrapExtractError(input.SavePath, err)
			}
			output.Saved = input.SavePath
		}

		return nil, output, nil
	}
}
