package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemex/pkg/extract"
)

func TestEngine_Query(t *testing.T) {
	e := NewEngine()
	data := []byte(`{"users": [{"name": "Alice"}, {"name": "Bob"}]}`)

	result, err := e.Query(data, ".users[].name", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"Alice", "Bob"}, result.Values)
	assert.Equal(t, 2, result.RawCount)
	assert.Empty(t, result.Errors)
}

func TestEngine_Query_MaxResults(t *testing.T) {
	e := NewEngine()
	data := []byte(`[1, 2, 3, 4, 5]`)

	result, err := e.Query(data, ".[]", 2)
	require.NoError(t, err)
	assert.Len(t, result.Values, 2)
	// RawCount reflects everything the expression produced.
	assert.Equal(t, 5, result.RawCount)
}

func TestEngine_Query_InvalidExpression(t *testing.T) {
	e := NewEngine()

	_, err := e.Query([]byte(`{}`), ".[broken", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestEngine_Query_InvalidJSON(t *testing.T) {
	e := NewEngine()

	_, err := e.Query([]byte(`{broken`), ".", 0)
	require.Error(t, err)
}

func TestEngine_Query_RuntimeErrorsCollected(t *testing.T) {
	e := NewEngine()

	result, err := e.Query([]byte(`{"a": null}`), ".a[]", 0)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	require.NotEmpty(t, result.Errors)
}

func TestEngine_QuerySchema(t *testing.T) {
	s, err := extract.NewJSON().ExtractBytes([]byte(`{"a": 1, "b": "x"}`), "doc", "")
	require.NoError(t, err)

	e := NewEngine()
	result, err := e.QuerySchema(s, `.data_nodes[] | select(.data_type == "integer") | .path`, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, result.Values)
}

func TestEngine_QuerySchema_RootElement(t *testing.T) {
	s, err := extract.NewJSON().ExtractBytes([]byte(`{"a": 1}`), "doc", "")
	require.NoError(t, err)

	e := NewEngine()
	result, err := e.QuerySchema(s, ".root_element.data_type", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"object"}, result.Values)
}

func TestEngine_ValidateExpression(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.ValidateExpression(".a.b[] | select(. > 1)"))
	require.Error(t, e.ValidateExpression(".[unterminated"))
}
