package schema

import (
	"errors"
	"fmt"
)

// ErrMissingProperties is returned when a schema that must declare
// properties does not.
var ErrMissingProperties = errors.New("schema has no properties")

// SchemaErrorType categorizes schema errors.
type SchemaErrorType int

const (
	// MissingProperties indicates a required "properties" keyword is absent.
	MissingProperties SchemaErrorType = iota
	// InvalidMetadata indicates the schema document could not be decoded.
	InvalidMetadata
)

// SchemaError represents a schema-related error.
type SchemaError struct {
	// Type categorizes the error.
	Type SchemaErrorType
	// Path locates the offending fragment (e.g. "oneOf[1]"), empty for the root.
	Path string
	// Message is the error message.
	Message string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (at %s)", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

func newSchemaError(typ SchemaErrorType, path, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typ,
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}
