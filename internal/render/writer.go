package render

import (
	"os"

	"github.com/tacogips/octavia/internal/debug"
)

// Writer writes rendered files to the filesystem.
type Writer interface {
	// WriteFile replaces the content of path.
	WriteFile(path string, content []byte) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct{}

// NewFileWriter creates a new FileWriter.
func NewFileWriter() Writer {
	return &FileWriter{}
}

// WriteFile truncates and writes path. The write is not atomic: a failure
// part way through can leave a partial file.
func (w *FileWriter) WriteFile(path string, content []byte) (err error) {
	debug.Debug("[render] Writing file: %s (size: %d bytes)", path, len(content))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return newRenderError(RenderWriteFailed, "failed to open file", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = newRenderError(RenderWriteFailed, "failed to close file", path, closeErr)
		}
	}()

	if _, err := f.Write(content); err != nil {
		return newRenderError(RenderWriteFailed, "failed to write file content", path, err)
	}
	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// An existing directory is reused.
func (w *FileWriter) CreateDir(path string) error {
	debug.Debug("[render] Creating directory: %s", path)
	if err := os.MkdirAll(path, 0755); err != nil {
		return newRenderError(RenderWriteFailed, "failed to create directory", path, err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
