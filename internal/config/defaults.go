package config

// DefaultProjectPath is used when neither --project nor
// OCTAVIA_PROJECT_PATH is set.
const DefaultProjectPath = "."

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ProjectPath: DefaultProjectPath,
		Output: OutputConfig{
			Color: true,
			Quiet: false,
		},
		Defaults: DefaultsConfig{
			Overwrite: false,
		},
	}
}

// ProjectDirectories returns the resource directories created by init.
func ProjectDirectories() []string {
	return []string{"sources", "destinations", "connections"}
}
