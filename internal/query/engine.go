// Package query provides JQ-based querying over schemas and JSON documents.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/itchyny/gojq"

	"github.com/usestring/schemex/pkg/schema"
)

// Engine executes JQ queries against JSON data.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the results of a JQ query.
type Result struct {
	Values   []any    `json:"values"`           // Extracted values
	Errors   []string `json:"errors,omitempty"` // Per-item errors (e.g., type mismatch)
	RawCount int      `json:"raw_count"`        // Count before truncation
}

// Query executes a JQ expression against JSON data.
// Returns the extracted values and any errors encountered.
func (e *Engine) Query(data []byte, expression string, maxResults int) (*Result, error) {
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return e.QueryValue(input, expression, maxResults)
}

// QuerySchema executes a JQ expression against the JSON form of a schema.
// The schema is serialized with its usual field names (root_element,
// data_nodes, ...) so expressions address the same document a saved
// artifact would contain.
func (e *Engine) QuerySchema(s *schema.Schema, expression string, maxResults int) (*Result, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize schema: %w", err)
	}
	// Round-trip through any so gojq sees plain maps and slices.
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to deserialize schema: %w", err)
	}
	return e.QueryValue(input, expression, maxResults)
}

// QueryValue executes a JQ expression against an already-decoded value.
func (e *Engine) QueryValue(input any, expression string, maxResults int) (*Result, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	result := &Result{
		Values: make([]any, 0),
		Errors: make([]string, 0),
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}

		result.RawCount++

		if maxResults > 0 && len(result.Values) >= maxResults {
			continue
		}
		result.Values = append(result.Values, v)
	}

	return result, nil
}

// ValidateExpression checks if a JQ expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return fmt.Errorf("invalid jq expression: %w", err)
	}

	if _, err := gojq.Compile(query); err != nil {
		return fmt.Errorf("failed to compile jq expression: %w", err)
	}

	return nil
}

// formatJQError creates a helpful error message for JQ execution errors.
//
// Note: Runtime JQ errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so we use string matching for user-facing hints.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return errStr + hint
}
