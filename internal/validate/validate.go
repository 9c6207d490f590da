// Package validate checks concrete documents against an inferred schema's
// generic-schema projection. It is a downstream consumer of the engine: the
// projection is guaranteed structurally well-formed, not complete enough for
// strict validation.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/schemex/pkg/filetype"
	schemapkg "github.com/usestring/schemex/pkg/schema"
)

// Result contains the outcome of validating a single document.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validator validates documents against one inferred schema.
type Validator struct {
	compiled *jsonschema.Schema
	source   *schemapkg.Schema
}

// New compiles the schema's generic-schema form for validation.
func New(sc *schemapkg.Schema) (*Validator, error) {
	if sc == nil || sc.Root == nil {
		return nil, fmt.Errorf("schema has no root element")
	}

	// Round-trip the projection through JSON to obtain the plain value form
	// the compiler expects.
	raw, err := json.Marshal(schemapkg.ToJSONSchema(sc))
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{compiled: compiled, source: sc}, nil
}

// ValidateFile detects the document's format and validates it.
func (v *Validator) ValidateFile(path string) (*Result, error) {
	kind, err := filetype.Detect(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case filetype.JSON:
		return v.ValidateJSON(data), nil
	case filetype.XML:
		return v.ValidateXML(data), nil
	default:
		return nil, fmt.Errorf("%w: %s", schemapkg.ErrUnsupportedFormat, path)
	}
}

// ValidateJSON validates raw JSON content against the compiled schema.
func (v *Validator) ValidateJSON(data []byte) *Result {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return &Result{Valid: false, Errors: []string{fmt.Sprintf("invalid JSON: %s", err)}}
	}
	return v.ValidateValue(value)
}

// ValidateValue validates an already-parsed document value.
func (v *Validator) ValidateValue(value any) *Result {
	err := v.compiled.Validate(value)
	if err == nil {
		return &Result{Valid: true}
	}
	return &Result{Valid: false, Errors: extractValidationErrors(err)}
}

// ValidateXML performs a structural check of an XML document: the root
// element must match the schema's root element name. Deeper XML validation
// is out of the engine's scope.
func (v *Validator) ValidateXML(data []byte) *Result {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return &Result{Valid: false, Errors: []string{fmt.Sprintf("invalid XML: %s", err)}}
	}

	var root *xmlquery.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			root = c
			break
		}
	}
	if root == nil {
		return &Result{Valid: false, Errors: []string{"XML document has no root element"}}
	}

	if root.Data != v.source.Root.Name {
		return &Result{
			Valid: false,
			Errors: []string{fmt.Sprintf("root element mismatch: expected %q, got %q",
				v.source.Root.Name, root.Data)},
		}
	}
	return &Result{Valid: true}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractValidationErrors flattens a validation error into human-readable,
// path-prefixed messages.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	errorsByPath := make(map[string][]string)
	collectErrors(validationErr, errorsByPath)

	var result []string
	for path, msgs := range errorsByPath {
		seen := make(map[string]bool)
		for _, msg := range msgs {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}
	return result
}

// collectErrors recursively collects leaf errors, keyed by instance path.
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		// Skip $ref bookkeeping messages; they carry no user-facing signal.
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], msg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}
