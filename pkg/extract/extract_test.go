package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemex/pkg/filetype"
	"github.com/usestring/schemex/pkg/schema"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractor_ExtractFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.json", `{"name": "Alice"}`)

	s, err := New().ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "users", s.Name)
	assert.Equal(t, schema.FileTypeJSON, s.FileType)
	assert.NotEmpty(t, s.CreatedAt)
}

func TestExtractor_ExtractFile_XML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "note.xml", `<note><to>Bob</to></note>`)

	s, err := New().ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, schema.FileTypeXML, s.FileType)
	assert.Equal(t, "note", s.Root.Name)
}

func TestExtractor_ExtractFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "name: Alice\nage: 30\n")

	s, err := New().ExtractFile(path)
	require.NoError(t, err)
	// YAML is normalized into the generic value tree and walked as JSON.
	assert.Equal(t, schema.FileTypeJSON, s.FileType)
	assert.Equal(t, schema.TypeInteger, s.Root.Properties["age"].DataType)
}

func TestExtractor_ExtractBytes_YAMLTimestampsNormalize(t *testing.T) {
	doc := "when: 2024-01-15\nat: 2024-01-15T10:30:00Z\n"

	s, err := New().ExtractBytes([]byte(doc), "events", filetype.YAML)
	require.NoError(t, err)

	// yaml.v3 resolves unquoted timestamps to time.Time; the walked tree
	// must carry plain strings so classification and stored values match
	// the quoted form.
	when := s.Root.Properties["when"]
	require.NotNil(t, when)
	assert.Equal(t, schema.TypeDate, when.DataType)

	at := s.Root.Properties["at"]
	require.NotNil(t, at)
	assert.Equal(t, schema.TypeDateTime, at.DataType)

	for _, n := range s.DataNodes {
		switch n.Path {
		case "when":
			assert.Equal(t, "2024-01-15", n.Value)
		case "at":
			assert.Equal(t, "2024-01-15T10:30:00Z", n.Value)
		}
	}
}

func TestExtractor_ExtractBytes_YAMLNonStringKeys(t *testing.T) {
	s, err := New().ExtractBytes([]byte("1: one\n2: two\n"), "codes", filetype.YAML)
	require.NoError(t, err)
	assert.Equal(t, schema.TypeString, s.Root.Properties["1"].DataType)
	assert.Equal(t, schema.TypeString, s.Root.Properties["2"].DataType)
}

func TestExtractor_ExtractFile_Unsupported(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "plain text, nothing structured")

	_, err := New().ExtractFile(path)
	require.ErrorIs(t, err, schema.ErrUnsupportedFormat)
}

func TestExtractor_ExtractFile_Missing(t *testing.T) {
	_, err := New().ExtractFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestExtractor_ExtractBytes(t *testing.T) {
	s, err := New().ExtractBytes([]byte(`{"a": 1}`), "inline", filetype.JSON)
	require.NoError(t, err)
	assert.Equal(t, "inline", s.Name)
	assert.NotEmpty(t, s.CreatedAt)

	_, err = New().ExtractBytes([]byte("whatever"), "inline", filetype.Unknown)
	require.ErrorIs(t, err, schema.ErrUnsupportedFormat)
}

func TestExtractor_ExtractFiles_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.json", `{"a": 1}`),
		writeFile(t, dir, "b.xml", `<b/>`),
		writeFile(t, dir, "c.yaml", "c: 3\n"),
	}

	schemas, err := New().ExtractFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, schemas, 3)
	assert.Equal(t, "a", schemas[0].Name)
	assert.Equal(t, "b", schemas[1].Name)
	assert.Equal(t, "c", schemas[2].Name)
}

func TestExtractor_ExtractFiles_FailsFast(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.json", `{"a": 1}`),
		filepath.Join(dir, "missing.json"),
	}

	_, err := New().ExtractFiles(context.Background(), paths, 2)
	require.Error(t, err)
}
