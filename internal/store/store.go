// Package store persists schema artifacts and reloads them. The
// structured-object form (plain JSON projection of the model) is the only
// round-trippable format; the generic-schema and markup-schema forms are
// one-way projections.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/usestring/schemex/internal/cache"
	"github.com/usestring/schemex/pkg/schema"
)

// Format selects the on-disk representation of a saved schema.
type Format string

const (
	// FormatJSON is the structured-object form: a field-by-field projection
	// of the schema model, reloadable via Load.
	FormatJSON Format = "json"
	// FormatJSONSchema is the generic-schema (JSON-Schema-like) projection.
	FormatJSONSchema Format = "jsonschema"
	// FormatXSD is the markup-schema (XSD-like) projection.
	FormatXSD Format = "xsd"
)

// ParseFormat maps a user-supplied format name to a Format. "dict" is an
// accepted alias for the structured-object form.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "dict", "":
		return FormatJSON, nil
	case "jsonschema", "json_schema", "json-schema":
		return FormatJSONSchema, nil
	case "xsd":
		return FormatXSD, nil
	default:
		return "", fmt.Errorf("%w: %q", schema.ErrUnsupportedFormat, s)
	}
}

// Store saves and loads schema artifacts, keeping recently loaded schemas in
// an LRU cache.
type Store struct {
	cache *cache.SchemaCache
}

// New creates a store caching at most maxCached loaded schemas.
func New(maxCached int) (*Store, error) {
	c, err := cache.NewSchemaCache(maxCached)
	if err != nil {
		return nil, err
	}
	return &Store{cache: c}, nil
}

// Save writes the schema to path in the given format, creating parent
// directories as needed.
func (s *Store) Save(sc *schema.Schema, path string, format Format) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(sc, "", "  ")
	case FormatJSONSchema:
		data, err = json.MarshalIndent(schema.ToJSONSchema(sc), "", "  ")
	case FormatXSD:
		data = []byte(schema.ToXSD(sc))
	default:
		return fmt.Errorf("%w: %q", schema.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a structured-object artifact back into a live schema, serving
// repeat loads from the cache. The returned schema is always a private copy.
func (s *Store) Load(path string) (*schema.Schema, error) {
	if cached, ok := s.cache.Get(path); ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc schema.Schema
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decoding schema artifact %s: %w", path, err)
	}

	s.cache.Put(path, &sc)
	return &sc, nil
}

// LoadAll loads several artifacts, preserving input order.
func (s *Store) LoadAll(paths []string) ([]*schema.Schema, error) {
	out := make([]*schema.Schema, 0, len(paths))
	for _, p := range paths {
		sc, err := s.Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
