package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemex/pkg/schema"
)

func TestJSONExtractor_Object(t *testing.T) {
	doc := []byte(`{
		"name": "Alice",
		"age": 30,
		"active": true,
		"joined": "2024-01-15",
		"address": {"city": "Oslo"}
	}`)

	x := NewJSON()
	s, err := x.ExtractBytes(doc, "users", "2024-01-15T00:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, "users", s.Name)
	assert.Equal(t, schema.FileTypeJSON, s.FileType)
	assert.Equal(t, "1.0", s.Version)

	root := s.Root
	require.NotNil(t, root)
	assert.Equal(t, schema.TypeObject, root.DataType)
	require.Len(t, root.Properties, 5)

	assert.Equal(t, schema.TypeString, root.Properties["name"].DataType)
	assert.Equal(t, schema.TypeInteger, root.Properties["age"].DataType)
	assert.Equal(t, schema.TypeBoolean, root.Properties["active"].DataType)
	assert.Equal(t, schema.TypeDate, root.Properties["joined"].DataType)

	address := root.Properties["address"]
	require.Equal(t, schema.TypeObject, address.DataType)
	assert.Equal(t, schema.TypeString, address.Properties["city"].DataType)

	// name/age/active/joined/address/city: 6 distinct property names.
	assert.Equal(t, 6, s.TotalElements)
	assert.Equal(t, 2, s.MaxDepth)
	assert.Equal(t, len(s.DataNodes), s.TotalDataNodes)
}

func TestJSONExtractor_Paths(t *testing.T) {
	doc := []byte(`{"user": {"name": "Alice"}, "tags": ["a", "b"]}`)

	x := NewJSON()
	s, err := x.ExtractBytes(doc, "doc", "")
	require.NoError(t, err)

	paths := make(map[string]schema.DataNode, len(s.DataNodes))
	for _, n := range s.DataNodes {
		paths[n.Path] = n
	}

	require.Contains(t, paths, "root")
	require.Contains(t, paths, "user")
	require.Contains(t, paths, "user.name")
	require.Contains(t, paths, "tags")
	require.Contains(t, paths, "tags[0]")
	require.Contains(t, paths, "tags[1]")

	assert.Equal(t, "", paths["root"].ParentPath)
	assert.Equal(t, "user", paths["user.name"].ParentPath)
	assert.Equal(t, "tags", paths["tags[1]"].ParentPath)
	assert.Equal(t, 2, paths["user.name"].Depth)

	// Paths are unique within one extraction.
	assert.Len(t, paths, len(s.DataNodes))
}

func TestJSONExtractor_NodesPreOrder(t *testing.T) {
	doc := []byte(`{"a": {"b": {"c": 1}}}`)

	x := NewJSON()
	s, err := x.ExtractBytes(doc, "doc", "")
	require.NoError(t, err)

	index := make(map[string]int, len(s.DataNodes))
	for i, n := range s.DataNodes {
		index[n.Path] = i
	}

	// Every node appears after its parent.
	for _, n := range s.DataNodes {
		if n.ParentPath == "" {
			continue
		}
		parentIdx, ok := index[n.ParentPath]
		require.True(t, ok, "missing parent %q", n.ParentPath)
		assert.Greater(t, index[n.Path], parentIdx)
		assert.Equal(t, s.DataNodes[parentIdx].Depth+1, n.Depth)
	}
}

func TestJSONExtractor_HomogeneousArray(t *testing.T) {
	doc := []byte(`{"scores": [1, 2, 3]}`)

	x := NewJSON()
	s, err := x.ExtractBytes(doc, "doc", "")
	require.NoError(t, err)

	scores := s.Root.Properties["scores"]
	require.Equal(t, schema.TypeArray, scores.DataType)
	require.NotNil(t, scores.ArrayType)
	assert.Equal(t, "item", scores.ArrayType.Name)
	assert.Equal(t, schema.TypeInteger, scores.ArrayType.DataType)
	assert.Equal(t, 3, scores.Occurrences)
	assert.False(t, s.DataNodes[0].IsLeaf) // root object
}

func TestJSONExtractor_MixedArrayBecomesUnknown(t *testing.T) {
	doc := []byte(`{"values": [1, 2, "three", 4]}`)

	x := NewJSON()
	s, err := x.ExtractBytes(doc, "doc", "")
	require.NoError(t, err)

	values := s.Root.Properties["values"]
	require.NotNil(t, values.ArrayType)
	assert.Equal(t, schema.TypeUnknown, values.ArrayType.DataType)

	// All items still produce data nodes despite the type mismatch.
	var itemNodes int
	for _, n := range s.DataNodes {
		if n.ParentPath == "values" {
			itemNodes++
		}
	}
	assert.Equal(t, 4, itemNodes)
}

func TestJSONExtractor_NullProperty(t *testing.T) {
	doc := []byte(`{"middle_name": null}`)

	x := NewJSON()
	s, err := x.ExtractBytes(doc, "doc", "")
	require.NoError(t, err)

	mn := s.Root.Properties["middle_name"]
	assert.Equal(t, schema.TypeNull, mn.DataType)
	assert.Contains(t, mn.Description, "(nullable)")
}

func TestJSONExtractor_ScalarRoot(t *testing.T) {
	x := NewJSON()
	s, err := x.ExtractBytes([]byte(`"just a string"`), "doc", "")
	require.NoError(t, err)

	assert.Equal(t, schema.TypeString, s.Root.DataType)
	assert.Equal(t, 0, s.MaxDepth)
	require.Len(t, s.DataNodes, 1)
	assert.True(t, s.DataNodes[0].IsLeaf)
}

func TestJSONExtractor_InvalidJSON(t *testing.T) {
	x := NewJSON()
	_, err := x.ExtractBytes([]byte(`{"broken`), "doc", "")
	require.Error(t, err)
}

func TestJSONExtractor_Deterministic(t *testing.T) {
	doc := []byte(`{"b": 1, "a": {"d": true, "c": [1, 2]}}`)

	x := NewJSON()
	first, err := x.ExtractBytes(doc, "doc", "2024-01-01T00:00:00Z")
	require.NoError(t, err)
	second, err := x.ExtractBytes(doc, "doc", "2024-01-01T00:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
