// Package filetype classifies source documents by extension and content.
package filetype

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Kind is a broad source-format classification.
type Kind string

const (
	XML     Kind = "xml"
	JSON    Kind = "json"
	YAML    Kind = "yaml"
	Unknown Kind = "unknown"
)

// extensions maps known file extensions to their kind.
var extensions = map[string]Kind{
	".xml":   XML,
	".xhtml": XML,
	".svg":   XML,
	".json":  JSON,
	".js":    JSON,
	".yaml":  YAML,
	".yml":   YAML,
}

// Detect classifies the document at path, first by extension and then by
// sniffing the leading content. Returns an error when the file cannot be
// read; returns Unknown when the format cannot be determined.
func Detect(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := extensions[ext]; ok {
		// Still confirm the file exists so missing-file errors surface here
		// rather than mid-extraction.
		if _, err := os.Stat(path); err != nil {
			return Unknown, err
		}
		return kind, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	head := make([]byte, 1024)
	n, _ := f.Read(head)
	return DetectBytes(head[:n]), nil
}

// DetectBytes classifies raw document content by its leading bytes.
func DetectBytes(data []byte) Kind {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Unknown
	}

	switch {
	case trimmed[0] == '<':
		return XML
	case trimmed[0] == '{' || trimmed[0] == '[':
		return JSON
	case bytes.HasPrefix(trimmed, []byte("---")):
		return YAML
	}
	return Unknown
}
