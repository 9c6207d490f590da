package filetype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_ByExtension(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file string
		want Kind
	}{
		{"doc.xml", XML},
		{"page.xhtml", XML},
		{"icon.svg", XML},
		{"data.json", JSON},
		{"data.JSON", JSON},
		{"config.yaml", YAML},
		{"config.yml", YAML},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte("irrelevant"), 0o644))

			kind, err := Detect(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestDetect_BySniffing(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    Kind
	}{
		{"xml content", `<root/>`, XML},
		{"json object", `{"a": 1}`, JSON},
		{"json array", `[1, 2]`, JSON},
		{"yaml document marker", "---\na: 1\n", YAML},
		{"plain text", "hello", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".dat")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			kind, err := Detect(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestDetect_MissingFile(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestDetectBytes_LeadingWhitespace(t *testing.T) {
	assert.Equal(t, JSON, DetectBytes([]byte("  \n\t{\"a\": 1}")))
	assert.Equal(t, XML, DetectBytes([]byte("\n<root/>")))
	assert.Equal(t, Unknown, DetectBytes(nil))
	assert.Equal(t, Unknown, DetectBytes([]byte("   ")))
}
