package schema

import "errors"

// Typed failures surfaced by the engine. File-not-found conditions surface as
// wrapped fs errors from the OS; parse failures wrap the source parser error.
var (
	// ErrUnsupportedFormat reports a source document whose format cannot be
	// classified, or a serialization format the store does not recognize.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyMergeInput reports a merge call with no input schemas.
	ErrEmptyMergeInput = errors.New("no schemas provided for merging")
)
