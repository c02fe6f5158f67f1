package render

import "fmt"

// RenderErrorType categorizes render errors.
type RenderErrorType int

const (
	// RenderTemplateFailed indicates template loading or execution failed.
	RenderTemplateFailed RenderErrorType = iota
	// RenderWriteFailed indicates a file or directory operation failed.
	RenderWriteFailed
	// RenderPathError indicates an unusable output path.
	RenderPathError
)

// RenderError represents renderer-specific errors.
type RenderError struct {
	// Type categorizes the error.
	Type RenderErrorType
	// Message is the error message.
	Message string
	// File is the file path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

func newRenderError(typ RenderErrorType, message, file string, cause error) *RenderError {
	return &RenderError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
