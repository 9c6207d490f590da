package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/mcp/tools"
	"github.com/usestring/schemex/pkg/schema"
)

// Resource URI scheme: schemex://
// Supported URIs:
//   schemex://schema/{path}      full saved schema artifact
//   schemex://jsonschema/{path}  JSON Schema projection of a saved artifact
//
// {path} is the URL-escaped filesystem path of the saved artifact.

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "schemex://schema/{path}",
		Name:        "Schema Artifact",
		Description: "Full saved schema including the element tree, data nodes, and statistics. Use the schemex_extract tool first to produce and save an artifact.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.8,
		},
	}, s.handleResourceSchema)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "schemex://jsonschema/{path}",
		Name:        "JSON Schema Projection",
		Description: "Standard JSON Schema rendering of a saved artifact, suitable for feeding to external validators.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceJSONSchema)
}

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	path, err := resourcePath(req.Params.URI, "schemex://schema/")
	if err != nil {
		return nil, err
	}

	loaded, err := s.deps.Store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %q: %w", path, err)
	}

	b, err := json.MarshalIndent(loaded, "", "  ")
	if err != nil {
		return nil, err
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: tools.MimeJSON, Text: string(b)},
		},
	}, nil
}

func (s *Server) handleResourceJSONSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	path, err := resourcePath(req.Params.URI, "schemex://jsonschema/")
	if err != nil {
		return nil, err
	}

	loaded, err := s.deps.Store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %q: %w", path, err)
	}

	b, err := json.MarshalIndent(schema.ToJSONSchema(loaded), "", "  ")
	if err != nil {
		return nil, err
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: tools.MimeJSON, Text: string(b)},
		},
	}, nil
}

// resourcePath extracts and unescapes the path component of a resource URI.
func resourcePath(uri, prefix string) (string, error) {
	raw, ok := strings.CutPrefix(uri, prefix)
	if !ok || raw == "" {
		return "", fmt.Errorf("invalid resource URI: %s", uri)
	}
	path, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid resource URI %s: %w", uri, err)
	}
	return path, nil
}
