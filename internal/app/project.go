package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/octavia/internal/config"
	"github.com/tacogips/octavia/internal/debug"
	"github.com/tacogips/octavia/internal/render"
)

// ConfirmFunc asks whether the existing file at path may be replaced.
type ConfirmFunc func(path string) (bool, error)

// GenerateResult contains the results of a generate workflow.
type GenerateResult struct {
	// ResourceName is the rendered resource.
	ResourceName string
	// DefinitionType is source, destination or connection.
	DefinitionType string
	// OutputPath is the written configuration file.
	OutputPath string
	// Overwritten reports whether an existing file was replaced.
	Overwritten bool
}

// project is an opened octavia project: its configuration and a renderer
// bound to the configured templates.
type project struct {
	cfg      *config.Config
	renderer *render.Renderer
}

func openProject(projectPath string) (*project, error) {
	debug.DebugValue("[app] Opening project", projectPath)

	loader := config.NewLoader()
	cfg, err := loader.LoadOrDefault(projectPath)
	if err != nil {
		return nil, NewProjectLoadError("failed to load project configuration", err)
	}
	if err := loader.Validate(cfg); err != nil {
		return nil, NewValidationError("invalid project configuration", err)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return nil, NewProjectLoadError("failed to load templates", err)
	}

	return &project{
		cfg:      cfg,
		renderer: render.NewRenderer(engine, nil),
	}, nil
}

func newEngine(cfg *config.Config) (*render.Engine, error) {
	if dir := cfg.Templates.Directory; dir != "" {
		debug.DebugValue("[app] Using template directory", dir)
		return render.NewEngine(os.DirFS(dir))
	}
	return render.DefaultEngine()
}

// generate renders job into the project, asking before it replaces an
// existing file.
func (p *project) generate(job render.Job, force bool, confirm ConfirmFunc) (*GenerateResult, error) {
	path := render.OutputPath(p.cfg.ProjectPath, job.DefinitionType(), job.ResourceName())

	overwritten, err := p.guardOverwrite(path, force, confirm)
	if err != nil {
		return nil, err
	}

	written, err := p.renderer.WriteYAML(p.cfg.ProjectPath, job)
	if err != nil {
		return nil, NewGenerateError("failed to render configuration", err)
	}
	debug.Debug("[app] Wrote %s", written)

	return &GenerateResult{
		ResourceName:   job.ResourceName(),
		DefinitionType: job.DefinitionType(),
		OutputPath:     written,
		Overwritten:    overwritten,
	}, nil
}

// guardOverwrite reports whether path exists and may be replaced. Without
// force, defaults.overwrite or a confirming answer an existing file is an
// OverwriteRejected error.
func (p *project) guardOverwrite(path string, force bool, confirm ConfirmFunc) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	if force || p.cfg.Defaults.Overwrite {
		debug.Debug("[app] Overwriting %s", path)
		return true, nil
	}
	if confirm == nil {
		return false, NewOverwriteRejectedError(path)
	}

	ok, err := confirm(path)
	if err != nil {
		return false, NewValidationError("overwrite confirmation failed", err)
	}
	if !ok {
		return false, NewOverwriteRejectedError(path)
	}
	return true, nil
}

// projectRelative returns path relative to the project root when it lies
// inside it, otherwise path unchanged.
func (p *project) projectRelative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(p.cfg.ProjectPath, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
