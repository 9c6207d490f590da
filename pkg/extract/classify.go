// Package extract infers structural schemas from XML, JSON and YAML
// documents. The walkers descend a parsed document tree and produce two
// parallel outputs: a schema element tree and a flat, path-addressable list
// of data nodes. Inferred schemas from related documents can be merged into
// one generalized schema.
package extract

import (
	"math"
	"regexp"

	"github.com/usestring/schemex/pkg/schema"
)

var (
	integerPattern  = regexp.MustCompile(`^-?\d+$`)
	floatPattern    = regexp.MustCompile(`^-?\d+\.\d+$`)
	booleanPattern  = regexp.MustCompile(`(?i)^(true|false|yes|no|1|0)$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}`)
)

// Classify maps a parsed document value to its DataType. Booleans are checked
// before numbers since some source representations treat them as integers.
// Strings are refined only to date/datetime; JSON carries native scalar types,
// so textual "1" or "true" stays a string.
func Classify(v any) schema.DataType {
	switch val := v.(type) {
	case nil:
		return schema.TypeNull
	case bool:
		return schema.TypeBoolean
	case float64:
		// encoding/json parses every number as float64.
		if math.Trunc(val) == val && !math.IsInf(val, 0) && !math.IsNaN(val) {
			return schema.TypeInteger
		}
		return schema.TypeFloat
	case float32:
		f := float64(val)
		if math.Trunc(f) == f && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return schema.TypeInteger
		}
		return schema.TypeFloat
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		// yaml.v3 parses integral numbers as int.
		return schema.TypeInteger
	case string:
		return InferStringType(val)
	case []any:
		return schema.TypeArray
	case map[string]any:
		return schema.TypeObject
	default:
		return schema.TypeUnknown
	}
}

// InferStringType refines a string scalar: only date and datetime patterns
// are consulted, in that order. Anything else, including the empty string,
// stays TypeString.
func InferStringType(s string) schema.DataType {
	if s == "" {
		return schema.TypeString
	}
	if datePattern.MatchString(s) {
		return schema.TypeDate
	}
	if dateTimePattern.MatchString(s) {
		return schema.TypeDateTime
	}
	return schema.TypeString
}

// ClassifyText classifies free-form markup text. Unlike JSON strings, XML
// content has no native scalar types, so integer, float and boolean patterns
// are tested before the date patterns.
func ClassifyText(s string) schema.DataType {
	if s == "" {
		return schema.TypeString
	}
	switch {
	case integerPattern.MatchString(s):
		return schema.TypeInteger
	case floatPattern.MatchString(s):
		return schema.TypeFloat
	case booleanPattern.MatchString(s):
		return schema.TypeBoolean
	case datePattern.MatchString(s):
		return schema.TypeDate
	case dateTimePattern.MatchString(s):
		return schema.TypeDateTime
	}
	return schema.TypeString
}
