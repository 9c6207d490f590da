package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/usestring/schemex/pkg/filetype"
	"github.com/usestring/schemex/pkg/schema"
)

// schemaVersion is stamped on every extracted schema artifact.
const schemaVersion = "1.0"

// Extractor is the format-dispatching front door: it detects the source
// format and routes to the matching walker. YAML documents are normalized
// into the generic value tree and walked as JSON.
type Extractor struct {
	json *JSONExtractor
	xml  *XMLExtractor
}

// New returns an extractor handling all supported source formats.
func New() *Extractor {
	return &Extractor{
		json: NewJSON(),
		xml:  NewXML(),
	}
}

// ExtractFile detects the format of the document at path and infers its
// schema. Unclassifiable documents fail with schema.ErrUnsupportedFormat.
func (e *Extractor) ExtractFile(path string) (*schema.Schema, error) {
	kind, err := filetype.Detect(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case filetype.XML:
		return e.xml.Extract(path)
	case filetype.JSON:
		return e.json.Extract(path)
	case filetype.YAML:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return e.extractYAML(data, schemaName(path), fileModTime(path))
	default:
		return nil, fmt.Errorf("%w: %s", schema.ErrUnsupportedFormat, path)
	}
}

// ExtractBytes infers a schema from raw document content of the given kind.
func (e *Extractor) ExtractBytes(data []byte, name string, kind filetype.Kind) (*schema.Schema, error) {
	createdAt := time.Now().Format(time.RFC3339)

	switch kind {
	case filetype.XML:
		return e.xml.ExtractBytes(data, name, createdAt)
	case filetype.JSON:
		return e.json.ExtractBytes(data, name, createdAt)
	case filetype.YAML:
		return e.extractYAML(data, name, createdAt)
	default:
		return nil, fmt.Errorf("%w: %s", schema.ErrUnsupportedFormat, kind)
	}
}

// extractYAML parses YAML, normalizes the value tree to JSON-compatible
// types and delegates to the JSON walker; the resulting schema carries the
// json file type since the walked tree is indistinguishable from a parsed
// JSON document.
func (e *Extractor) extractYAML(data []byte, name, createdAt string) (*schema.Schema, error) {
	var parsed any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing YAML document: %w", err)
	}
	return e.json.ExtractValue(normalizeYAMLValue(parsed), name, createdAt), nil
}

// normalizeYAMLValue recursively converts YAML-parsed values to
// JSON-compatible types. yaml.v3 produces map[string]any for mappings but
// may produce other map types for non-string keys, and resolves unquoted
// timestamps to time.Time; both would leak non-JSON values into the walked
// tree and the stored data nodes.
func normalizeYAMLValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = normalizeYAMLValue(v)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[fmt.Sprintf("%v", k)] = normalizeYAMLValue(v)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = normalizeYAMLValue(v)
		}
		return result
	case time.Time:
		// Date-only scalars resolve to midnight UTC; keep them dates.
		if h, m, s := val.Clock(); h == 0 && m == 0 && s == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	default:
		return val
	}
}

// schemaName derives a schema name from a document path: the base name
// without extension.
func schemaName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// fileModTime returns the document's modification time in RFC 3339, or the
// empty string when the file cannot be stat'ed. This is the one failure the
// engine swallows: a missing timestamp degrades the artifact, it does not
// abort the extraction.
func fileModTime(path string) string {
	st, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return st.ModTime().Format(time.RFC3339)
}

// pathName returns the display name of a path: its last dot-separated
// segment.
func pathName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
