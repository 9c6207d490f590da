package schema

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONSchema_NilRoot(t *testing.T) {
	assert.Nil(t, ToJSONSchema(nil))
	assert.Nil(t, ToJSONSchema(&Schema{Name: "empty"}))
}

func TestToJSONSchema_Object(t *testing.T) {
	s := &Schema{
		Root: &Element{
			Name:     "root",
			DataType: TypeObject,
			Properties: map[string]*Element{
				"name":  {Name: "name", DataType: TypeString, Required: true},
				"age":   {Name: "age", DataType: TypeInteger},
				"ratio": {Name: "ratio", DataType: TypeFloat},
				"born":  {Name: "born", DataType: TypeDate},
			},
		},
	}

	js := ToJSONSchema(s)
	require.NotNil(t, js)
	assert.Equal(t, "object", js.Type)

	name, ok := js.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, "string", name.Type)

	age, ok := js.Properties.Get("age")
	require.True(t, ok)
	assert.Equal(t, "integer", age.Type)

	ratio, ok := js.Properties.Get("ratio")
	require.True(t, ok)
	assert.Equal(t, "number", ratio.Type)

	// Dates degrade to plain strings.
	born, ok := js.Properties.Get("born")
	require.True(t, ok)
	assert.Equal(t, "string", born.Type)

	assert.Equal(t, []string{"name"}, js.Required)
}

func TestToJSONSchema_Array(t *testing.T) {
	s := &Schema{
		Root: &Element{
			Name:      "root",
			DataType:  TypeArray,
			ArrayType: &Element{Name: "item", DataType: TypeInteger},
		},
	}

	js := ToJSONSchema(s)
	assert.Equal(t, "array", js.Type)
	require.NotNil(t, js.Items)
	assert.Equal(t, "integer", js.Items.Type)
}

func TestToJSONSchema_ScalarConstraints(t *testing.T) {
	minVal, maxVal := 1.0, 10.5
	minLen, maxLen := 2, 8
	e := &Element{
		Name:      "field",
		DataType:  TypeString,
		MinValue:  &minVal,
		MaxValue:  &maxVal,
		MinLength: &minLen,
		MaxLength: &maxLen,
		Pattern:   "^[a-z]+$",
	}

	js := ElementToJSONSchema(e)
	assert.Equal(t, "1", string(js.Minimum))
	assert.Equal(t, "10.5", string(js.Maximum))
	require.NotNil(t, js.MinLength)
	assert.Equal(t, uint64(2), *js.MinLength)
	require.NotNil(t, js.MaxLength)
	assert.Equal(t, uint64(8), *js.MaxLength)
	assert.Equal(t, "^[a-z]+$", js.Pattern)
}

func TestToJSONSchema_PropertyOrderIsSorted(t *testing.T) {
	s := &Schema{
		Root: &Element{
			Name:     "root",
			DataType: TypeObject,
			Properties: map[string]*Element{
				"zeta":  {Name: "zeta", DataType: TypeString},
				"alpha": {Name: "alpha", DataType: TypeString},
				"motif": {Name: "motif", DataType: TypeString},
			},
		},
	}

	js := ToJSONSchema(s)
	var order []string
	for pair := js.Properties.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	assert.Equal(t, []string{"alpha", "motif", "zeta"}, order)
}

func TestToJSONSchema_Marshals(t *testing.T) {
	s := &Schema{
		Root: &Element{
			Name:     "root",
			DataType: TypeObject,
			Properties: map[string]*Element{
				"v": {Name: "v", DataType: TypeUnknown},
			},
		},
	}

	b, err := json.Marshal(ToJSONSchema(s))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"object"`)
	// Unknown degrades to string.
	assert.Contains(t, string(b), `"type":"string"`)
}
