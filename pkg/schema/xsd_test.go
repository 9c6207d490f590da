package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToXSD_Empty(t *testing.T) {
	assert.Equal(t, "", ToXSD(nil))
	assert.Equal(t, "", ToXSD(&Schema{Name: "rootless"}))
}

func TestToXSD_Object(t *testing.T) {
	s := &Schema{
		Root: &Element{
			Name:     "book",
			DataType: TypeObject,
			Properties: map[string]*Element{
				"title": {Name: "title", DataType: TypeString, Required: true},
				"year":  {Name: "year", DataType: TypeInteger},
			},
			Attributes: map[string]*Attribute{
				"id":   {Name: "id", DataType: TypeInteger, Required: true, DefaultValue: "1"},
				"lang": {Name: "lang", DataType: TypeString},
			},
		},
	}

	out := ToXSD(s)

	assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"))
	assert.Contains(t, out, `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">`)
	assert.True(t, strings.HasSuffix(out, "</xs:schema>"))

	assert.Contains(t, out, `<xs:element name="book">`)
	assert.Contains(t, out, "<xs:complexType>")
	assert.Contains(t, out, "<xs:sequence>")

	// Required scalars carry no minOccurs; optional ones do.
	assert.Contains(t, out, `<xs:element name="title" type="xs:string"/>`)
	assert.Contains(t, out, `<xs:element name="year" type="xs:integer" minOccurs="0"/>`)

	// Required attributes omit use="optional".
	assert.Contains(t, out, `<xs:attribute name="id" type="xs:integer" default="1"/>`)
	assert.Contains(t, out, `<xs:attribute name="lang" type="xs:string" use="optional"/>`)
}

func TestToXSD_Array(t *testing.T) {
	s := &Schema{
		Root: &Element{
			Name:      "scores",
			DataType:  TypeArray,
			ArrayType: &Element{Name: "item", DataType: TypeInteger},
		},
	}

	out := ToXSD(s)
	assert.Contains(t, out, `<xs:element name="scores">`)
	assert.Contains(t, out, `<xs:element name="item" type="xs:integer" maxOccurs="unbounded"/>`)
}

func TestToXSD_ArrayWithoutItemTypeDefaultsToString(t *testing.T) {
	s := &Schema{
		Root: &Element{Name: "empty", DataType: TypeArray},
	}

	out := ToXSD(s)
	assert.Contains(t, out, `<xs:element name="item" type="xs:string" maxOccurs="unbounded"/>`)
}

func TestToXSD_SortedAndDeterministic(t *testing.T) {
	s := &Schema{
		Root: &Element{
			Name:     "root",
			DataType: TypeObject,
			Properties: map[string]*Element{
				"b": {Name: "b", DataType: TypeString},
				"a": {Name: "a", DataType: TypeString},
			},
		},
	}

	out := ToXSD(s)
	require.Equal(t, out, ToXSD(s))
	assert.Less(t, strings.Index(out, `name="a"`), strings.Index(out, `name="b"`))
}
