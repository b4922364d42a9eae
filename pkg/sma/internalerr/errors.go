package internalerr

import "errors"

// Sentinel errors for common cases
var (
	// ErrInvalidInput: no usable documents were supplied.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSchema: a document source could not locate a text field.
	ErrSchema = errors.New("no text column found")
	// ErrNoContent: vocabulary or graph construction produced nothing (degenerate corpus).
	ErrNoContent = errors.New("degenerate corpus")
	// ErrUnknownSource: no document source is registered under the requested name.
	ErrUnknownSource = errors.New("unknown source")
	ErrInvalidConfig = errors.New("invalid configuration")
)
