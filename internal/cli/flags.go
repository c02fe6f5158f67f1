package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagProject               = "project"
	FlagForce                 = "force"
	FlagNoColor               = "no-color"
	FlagQuiet                 = "quiet"
	FlagDebug                 = "debug"
	FlagSource                = "source"
	FlagDestination           = "destination"
	FlagCatalog               = "catalog"
	FlagDestinationDefinition = "destination-definition"

	// Flag descriptions
	DescProject               = "Project root (default: $OCTAVIA_PROJECT_PATH or the current directory)"
	DescForce                 = "Overwrite an existing configuration without asking"
	DescNoColor               = "Disable colored output"
	DescQuiet                 = "Suppress output"
	DescDebug                 = "Enable debug logging"
	DescSource                = "Path to the source configuration.yaml"
	DescDestination           = "Path to the destination configuration.yaml"
	DescCatalog               = "Path to the source catalog (JSON or YAML)"
	DescDestinationDefinition = "Path to the destination definition, enables normalization and dbt operations"
)
