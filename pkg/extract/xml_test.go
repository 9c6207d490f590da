package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemex/pkg/schema"
)

const libraryXML = `<?xml version="1.0"?>
<library>
  <book id="1">
    <title>The Go Programming Language</title>
    <year>2015</year>
  </book>
  <book id="2">
    <title>Programming Rust</title>
    <year>2019</year>
  </book>
  <location/>
</library>`

func TestXMLExtractor_Basic(t *testing.T) {
	x := NewXML()
	s, err := x.ExtractBytes([]byte(libraryXML), "library", "2024-01-15T00:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, schema.FileTypeXML, s.FileType)
	require.NotNil(t, s.Root)
	assert.Equal(t, "library", s.Root.Name)
	assert.Equal(t, schema.TypeObject, s.Root.DataType)

	// library, book, title, year, location
	assert.Equal(t, 5, s.TotalElements)
	assert.Equal(t, 1, s.TotalAttributes)
	assert.Equal(t, len(s.DataNodes), s.TotalDataNodes)
	// title's text content sits at depth 3.
	assert.Equal(t, 3, s.MaxDepth)
}

func TestXMLExtractor_RepeatedSiblingsCollapse(t *testing.T) {
	x := NewXML()
	s, err := x.ExtractBytes([]byte(libraryXML), "library", "")
	require.NoError(t, err)

	book := s.Root.Properties["book"]
	require.NotNil(t, book)
	assert.Equal(t, schema.TypeArray, book.DataType)
	assert.Equal(t, 2, book.Occurrences)

	item := book.ArrayType
	require.NotNil(t, item)
	assert.Equal(t, "book", item.Name)
	assert.Equal(t, schema.TypeObject, item.DataType)
	require.Contains(t, item.Properties, "title")
	require.Contains(t, item.Properties, "year")

	// The single location element stays a plain property.
	location := s.Root.Properties["location"]
	require.NotNil(t, location)
	assert.Equal(t, schema.TypeString, location.DataType)
}

func TestXMLExtractor_RepeatedSiblingPathsAreIndexed(t *testing.T) {
	x := NewXML()
	s, err := x.ExtractBytes([]byte(libraryXML), "library", "")
	require.NoError(t, err)

	paths := make(map[string]schema.DataNode, len(s.DataNodes))
	for _, n := range s.DataNodes {
		paths[n.Path] = n
	}

	// No path reuse within one extraction.
	assert.Len(t, paths, len(s.DataNodes))

	require.Contains(t, paths, "library")
	require.Contains(t, paths, "library.book[0]")
	require.Contains(t, paths, "library.book[1]")
	require.Contains(t, paths, "library.book[0].title")
	require.Contains(t, paths, "library.book[1].year#text")
	require.Contains(t, paths, "library.location")

	assert.Equal(t, "library", paths["library.book[1]"].ParentPath)
	assert.Equal(t, 2, paths["library.book[0].title"].Depth)
}

func TestXMLExtractor_Attributes(t *testing.T) {
	x := NewXML()
	s, err := x.ExtractBytes([]byte(libraryXML), "library", "")
	require.NoError(t, err)

	item := s.Root.Properties["book"].ArrayType
	require.Contains(t, item.Attributes, "id")

	id := item.Attributes["id"]
	assert.Equal(t, schema.TypeInteger, id.DataType)
	assert.True(t, id.Required)
	assert.Equal(t, "1", id.DefaultValue)

	var attrNode *schema.DataNode
	for i, n := range s.DataNodes {
		if n.Path == "library.book[0]@id" {
			attrNode = &s.DataNodes[i]
			break
		}
	}
	require.NotNil(t, attrNode)
	assert.True(t, attrNode.IsLeaf)
	assert.Equal(t, "library.book[0]", attrNode.ParentPath)
	assert.Equal(t, "1", attrNode.Value)
}

func TestXMLExtractor_TypedTextContent(t *testing.T) {
	x := NewXML()
	s, err := x.ExtractBytes([]byte(libraryXML), "library", "")
	require.NoError(t, err)

	year := s.Root.Properties["book"].ArrayType.Properties["year"]
	require.NotNil(t, year)

	// Non-string text is recorded as a typed "text" property.
	require.Contains(t, year.Properties, "text")
	assert.Equal(t, schema.TypeInteger, year.Properties["text"].DataType)
	assert.Equal(t, []any{"2015"}, year.Properties["text"].Examples)

	// Free-form text gets no such property.
	title := s.Root.Properties["book"].ArrayType.Properties["title"]
	assert.NotContains(t, title.Properties, "text")
}

func TestXMLExtractor_EmptyElementIsStringLeaf(t *testing.T) {
	x := NewXML()
	s, err := x.ExtractBytes([]byte(`<thing/>`), "thing", "")
	require.NoError(t, err)

	assert.Equal(t, schema.TypeString, s.Root.DataType)
	require.Len(t, s.DataNodes, 1)
	assert.True(t, s.DataNodes[0].IsLeaf)
	assert.Nil(t, s.DataNodes[0].Value)
}

func TestXMLExtractor_AttributesOnlyElementIsObject(t *testing.T) {
	x := NewXML()
	s, err := x.ExtractBytes([]byte(`<thing code="xyz"/>`), "thing", "")
	require.NoError(t, err)

	assert.Equal(t, schema.TypeObject, s.Root.DataType)
	require.Len(t, s.DataNodes, 2)
	assert.False(t, s.DataNodes[0].IsLeaf)
	assert.Nil(t, s.DataNodes[0].Value)
	assert.Equal(t, 1, s.MaxDepth)
}

func TestXMLExtractor_NoRootElement(t *testing.T) {
	x := NewXML()
	_, err := x.ExtractBytes([]byte(`<?xml version="1.0"?>`), "empty", "")
	require.Error(t, err)
}
