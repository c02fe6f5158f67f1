package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/tacogips/octavia/internal/debug"
	"gopkg.in/yaml.v3"
)

// Loader defines the interface for loading project configuration.
type Loader interface {
	// Load loads configuration from the octavia.yaml in projectDir.
	Load(projectDir string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if octavia.yaml doesn't exist.
	LoadOrDefault(projectDir string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
//
// Layering, lowest to highest precedence: defaults, octavia.yaml,
// <project>/.env (never overriding variables already set), environment.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the octavia.yaml in projectDir.
func (l *FileLoader) Load(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid configuration structure", err)
	}
	debug.Debug("[config] Loaded %s", path)

	if err := applyEnvironment(projectDir, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if octavia.yaml doesn't exist.
// Environment overrides apply in both cases.
func (l *FileLoader) LoadOrDefault(projectDir string) (*Config, error) {
	cfg, err := l.Load(projectDir)
	if err == nil {
		return cfg, nil
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != ConfigNotFound {
		return nil, err
	}

	debug.Debug("[config] No %s in %s, using defaults", FileName, projectDir)
	cfg = DefaultConfig()
	if err := applyEnvironment(projectDir, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if config.ProjectPath == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "project.path", "project path cannot be empty")
	}
	if dir := config.Templates.Directory; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.directory",
				fmt.Sprintf("template directory %s is not accessible", dir))
		}
		if !info.IsDir() {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "templates.directory",
				fmt.Sprintf("%s is not a directory", dir))
		}
	}
	return nil
}

// applyEnvironment loads <projectDir>/.env and applies OCTAVIA_* overrides.
func applyEnvironment(projectDir string, cfg *Config) error {
	envPath := filepath.Join(projectDir, EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return NewConfigErrorWithCause(ConfigInvalid, envPath, "invalid dotenv file", err)
		}
		debug.Debug("[config] Loaded environment from %s", envPath)
	}

	if err := env.Parse(cfg); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, "environment", "invalid OCTAVIA_* variable", err)
	}

	cfg.ProjectPath = projectDir
	if dir := cfg.Templates.Directory; dir != "" && !filepath.IsAbs(dir) {
		cfg.Templates.Directory = filepath.Join(projectDir, dir)
	}
	return nil
}

type projectEnvironment struct {
	ProjectPath string `env:"OCTAVIA_PROJECT_PATH"`
}

// ResolveProjectPath picks the project root: the flag value if set, then
// OCTAVIA_PROJECT_PATH, then the current directory. The result is absolute.
func ResolveProjectPath(flagValue string) (string, error) {
	path := flagValue
	if path == "" {
		penv, err := env.ParseAs[projectEnvironment]()
		if err != nil {
			return "", NewConfigErrorWithCause(ConfigInvalid, "environment", "invalid OCTAVIA_PROJECT_PATH", err)
		}
		path = penv.ProjectPath
	}
	if path == "" {
		path = DefaultProjectPath
	}
	return ExpandPath(path)
}

// Save writes cfg as octavia.yaml into projectDir.
func Save(projectDir string, cfg *Config) error {
	path := filepath.Join(projectDir, FileName)
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path,
			fmt.Sprintf("failed to create directory %s", projectDir), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to create configuration file", err)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to write configuration file", err)
	}
	if err := enc.Close(); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to write configuration file", err)
	}
	return nil
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return absPath, nil
}
