package definition

import "fmt"

// DefinitionErrorType categorizes definition errors.
type DefinitionErrorType int

const (
	// DefinitionNotFound indicates the input file does not exist.
	DefinitionNotFound DefinitionErrorType = iota
	// DefinitionInvalid indicates the input file could not be decoded or is incomplete.
	DefinitionInvalid
	// DefinitionTypeMismatch indicates a definition or resource of the wrong type.
	DefinitionTypeMismatch
)

// DefinitionError represents errors loading definitions, catalogs and resources.
type DefinitionError struct {
	// Type categorizes the error.
	Type DefinitionErrorType
	// Message is the error message.
	Message string
	// File is the input file path (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *DefinitionError) Unwrap() error {
	return e.Cause
}

func newDefinitionError(typ DefinitionErrorType, message, file string, cause error) *DefinitionError {
	return &DefinitionError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
