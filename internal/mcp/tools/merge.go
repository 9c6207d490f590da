package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/store"
	"github.com/usestring/schemex/pkg/extract"
	"github.com/usestring/schemex/pkg/schema"
)

// MergeInput is the input for schemex_merge.
type MergeInput struct {
	Paths      []string `json:"paths" jsonschema:"Paths to merge. Raw documents are extracted first; files ending in .schema.json are loaded as saved artifacts."`
	SavePath   string   `json:"save_path,omitempty" jsonschema:"Optional path to save the merged schema to"`
	SaveFormat string   `json:"save_format,omitempty" jsonschema:"Serialization format for save_path: json jsonschema or xsd (default: json)"`
	FullSchema bool     `json:"full_schema,omitempty" jsonschema:"Include the full merged schema in the response, not just the summary"`
}

// MergeOutput is the output for schemex_merge.
type MergeOutput struct {
	Summary SchemaSummary   `json:"summary"`
	Inputs  []SchemaSummary `json:"inputs,omitzero"`
	Schema  any             `json:"schema,omitempty"`
	Saved   string          `json:"saved,omitempty"`
}

// ToolMerge merges schemas from multiple documents or saved artifacts
// into a single schema describing their structural union.
func ToolMerge(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input MergeInput) (*sdkmcp.CallToolResult, MergeOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input MergeInput) (*sdkmcp.CallToolResult, MergeOutput, error) {
		if len(input.Paths) == 0 {
			return nil, MergeOutput{}, ErrInvalidInput("paths is required")
		}

		var artifacts, documents []string
		for _, p := range input.Paths {
			if IsArtifactPath(p) {
				artifacts = append(artifacts, p)
			} else {
				documents = append(documents, p)
			}
		}

		schemas := make([]*schema.Schema, 0, len(input.Paths))

		if len(documents) > 0 {
			extracted, err := d.Extractor.ExtractFiles(ctx, documents, d.Config.ExtractWorkers)
			if err != nil {
				return nil, MergeOutput{}, WrapExtractError(documents[0], err)
			}
			schemas = append(schemas, extracted...)
		}
		for _, p := range artifacts {
			loaded, err := d.Store.Load(p)
			if err != nil {
				return nil, MergeOutput{}, WrapExtractError(p, err)
			}
			schemas = append(schemas, loaded)
		}

		merged, err := extract.Merge(schemas)
		if err != nil {
			return nil, MergeOutput{}, ErrInvalidInput(err.Error())
		}

		output := MergeOutput{
			Summary: BuildSchemaSummary(merged),
			Inputs:  make([]SchemaSummary, 0, len(schemas)),
		}
		for _, s := range schemas {
			output.Inputs = append(output.Inputs, BuildSchemaSummary(s))
		}

		if input.SavePath != "" {
			format, err := store.ParseFormat(input.SaveFormat)
			if err != nil {
				return nil, MergeOutput{}, ErrInvalidInput("save_format must be json, jsonschema, or xsd")
			}
			if err := d.Store.Save(merged, input.SavePath, format); err != nil {
				return nil, MergeOutput{}, WrapExtractError(input.SavePath, err)
			}
			output.Saved = input.SavePath
		}

		if input.FullSchema {
			v, err := SchemaToAny(merged)
			if err != nil {
				return nil, MergeOutput{}, err
			}
			output.Schema = v
		}

		return nil, output, nil
	}
}
