package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/usestring/schemex/internal/config"
	"github.com/usestring/schemex/internal/query"
	"github.com/usestring/schemex/internal/store"
	"github.com/usestring/schemex/pkg/extract"
	"github.com/usestring/schemex/pkg/filetype"
	"github.com/usestring/schemex/pkg/schema"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Extractor *extract.Extractor
	Store     *store.Store
	Query     *query.Engine
	Config    *config.Config
}

// ResolveSchema produces a schema from either a saved artifact or a raw
// document. Files ending in .schema.json are treated as saved artifacts;
// everything else is extracted fresh.
func (d *Deps) ResolveSchema(path string) (*schema.Schema, error) {
	if IsArtifactPath(path) {
		return d.Store.Load(path)
	}
	return d.Extractor.ExtractFile(path)
}

// ExtractContent extracts a schema from inline document content.
func (d *Deps) ExtractContent(content, name, format string) (*schema.Schema, error) {
	kind := filetype.Unknown
	switch strings.ToLower(format) {
	case "xml":
		kind = filetype.XML
	case "json", "":
		kind = filetype.JSON
	case "yaml", "yml":
		kind = filetype.YAML
	default:
		return nil, fmt.Errorf("unsupported content format %q: %w", format, schema.ErrUnsupportedFormat)
	}
	if name == "" {
		name = "document"
	}
	return d.Extractor.ExtractBytes([]byte(content), name, kind)
}

// IsArtifactPath reports whether a path names a saved schema artifact
// rather than a raw document.
func IsArtifactPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), ".schema.json")
}

// ReadDocument loads a document from disk, capped to guard against
// accidentally pointing a tool at a huge file.
func ReadDocument(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("document %s is %d bytes, exceeds limit of %d", path, info.Size(), maxBytes)
	}
	return os.ReadFile(path)
}
