package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tacogips/octavia/internal/config"
	"github.com/tacogips/octavia/internal/debug"
)

// InitOptions contains options for project initialization.
type InitOptions struct {
	// ProjectPath is the project root to initialize.
	ProjectPath string
}

// InitResult contains the results of project initialization.
type InitResult struct {
	// ProjectPath is the initialized project root.
	ProjectPath string
	// CreatedDirectories lists the resource directories that were created.
	CreatedDirectories []string
	// ExistingDirectories lists the resource directories that already existed.
	ExistingDirectories []string
	// ConfigCreated reports whether octavia.yaml was written.
	ConfigCreated bool
}

// InitProject creates the resource directories and a default octavia.yaml.
// Running it again on an initialized project changes nothing.
func InitProject(ctx context.Context, opts InitOptions) (*InitResult, error) {
	debug.DebugSection("[app] InitProject workflow start")
	debug.DebugValue("[app] ProjectPath", opts.ProjectPath)

	if opts.ProjectPath == "" {
		return nil, NewValidationError("project path cannot be empty", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewProjectInitError("init cancelled", err)
	}

	result := &InitResult{ProjectPath: opts.ProjectPath}

	for _, name := range config.ProjectDirectories() {
		dir := filepath.Join(opts.ProjectPath, name)
		if info, err := os.Stat(dir); err == nil {
			if !info.IsDir() {
				return nil, NewProjectInitError(dir+" exists and is not a directory", nil)
			}
			debug.Debug("[app] Directory already exists: %s", dir)
			result.ExistingDirectories = append(result.ExistingDirectories, name)
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, NewProjectInitError("failed to create directory", err)
		}
		debug.Debug("[app] Created directory: %s", dir)
		result.CreatedDirectories = append(result.CreatedDirectories, name)
	}

	configPath := filepath.Join(opts.ProjectPath, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		debug.Debug("[app] Keeping existing %s", configPath)
	} else {
		if err := config.Save(opts.ProjectPath, config.DefaultConfig()); err != nil {
			return nil, NewProjectInitError("failed to write project configuration", err)
		}
		result.ConfigCreated = true
	}

	debug.Debug("[app] InitProject workflow completed successfully")
	return result, nil
}
