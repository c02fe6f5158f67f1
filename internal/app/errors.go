package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ProjectInitFailed indicates project initialization failed.
	ProjectInitFailed AppErrorType = iota
	// ProjectLoadFailed indicates the project configuration could not be loaded.
	ProjectLoadFailed
	// GenerateFailed indicates rendering a configuration failed.
	GenerateFailed
	// ValidationFailed indicates validation failed.
	ValidationFailed
	// OverwriteRejected indicates an existing configuration was left untouched.
	OverwriteRejected
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewProjectInitError creates a project init error.
func NewProjectInitError(message string, cause error) *AppError {
	return NewAppError(ProjectInitFailed, message, cause)
}

// NewProjectLoadError creates a project load error.
func NewProjectLoadError(message string, cause error) *AppError {
	return NewAppError(ProjectLoadFailed, message, cause)
}

// NewGenerateError creates a generate error.
func NewGenerateError(message string, cause error) *AppError {
	return NewAppError(GenerateFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewOverwriteRejectedError creates an overwrite rejected error.
func NewOverwriteRejectedError(path string) *AppError {
	return NewAppError(OverwriteRejected,
		fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
}
