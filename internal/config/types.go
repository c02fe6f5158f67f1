package config

// FileName is the project configuration file at the project root.
const FileName = "octavia.yaml"

// EnvFileName is the dotenv file loaded from the project root.
const EnvFileName = ".env"

// Config represents the octavia project configuration.
type Config struct {
	// ProjectPath is the project root. It is set by the loader, never read
	// from the configuration file.
	ProjectPath string `koanf:"-" yaml:"-"`
	// Templates configuration for the rendering engine.
	Templates TemplateConfig `koanf:"templates" yaml:"templates"`
	// Output configuration for display.
	Output OutputConfig `koanf:"output" yaml:"output"`
	// Defaults configuration for command behaviour.
	Defaults DefaultsConfig `koanf:"defaults" yaml:"defaults"`
}

// TemplateConfig represents template engine settings.
type TemplateConfig struct {
	// Directory overrides the embedded templates when set. It must contain
	// both configuration templates.
	Directory string `koanf:"directory" yaml:"directory,omitempty" env:"OCTAVIA_TEMPLATE_DIR"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `koanf:"color" yaml:"color" env:"OCTAVIA_COLOR"`
	// Quiet suppresses non-error output.
	Quiet bool `koanf:"quiet" yaml:"quiet" env:"OCTAVIA_QUIET"`
}

// DefaultsConfig represents default values for command flags.
type DefaultsConfig struct {
	// Overwrite replaces existing configuration files without asking.
	Overwrite bool `koanf:"overwrite" yaml:"overwrite" env:"OCTAVIA_OVERWRITE"`
}
