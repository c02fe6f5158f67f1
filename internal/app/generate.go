package app

import (
	"context"
	"fmt"

	"github.com/tacogips/octavia/internal/config"
	"github.com/tacogips/octavia/internal/debug"
	"github.com/tacogips/octavia/internal/definition"
	"github.com/tacogips/octavia/internal/render"
)

// GenerateConnectorOptions contains options for rendering a source or
// destination configuration.
type GenerateConnectorOptions struct {
	// ProjectPath is the project root.
	ProjectPath string
	// DefinitionType is definition.TypeSource or definition.TypeDestination.
	DefinitionType string
	// DefinitionPath is the connector definition file (JSON or YAML).
	DefinitionPath string
	// ResourceName names the resource directory.
	ResourceName string
	// Force replaces an existing configuration without asking.
	Force bool
	// Confirm is asked before replacing an existing configuration (optional).
	Confirm ConfirmFunc
}

// GenerateConnector renders <project>/<type>s/<name>/configuration.yaml
// from a connector definition.
func GenerateConnector(ctx context.Context, opts GenerateConnectorOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] GenerateConnector workflow start")
	debug.DebugValue("[app] DefinitionType", opts.DefinitionType)
	debug.DebugValue("[app] DefinitionPath", opts.DefinitionPath)
	debug.DebugValue("[app] ResourceName", opts.ResourceName)

	if err := validateConnectorOptions(opts); err != nil {
		return nil, NewValidationError("invalid generate options", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewGenerateError("generate cancelled", err)
	}

	def, err := definition.LoadConnectorDefinition(opts.DefinitionPath)
	if err != nil {
		return nil, NewGenerateError("failed to load connector definition", err)
	}
	if err := def.ExpectType(opts.DefinitionType); err != nil {
		return nil, NewValidationError("definition type mismatch", err)
	}
	debug.DebugValue("[app] Connector", def.DockerRepository+":"+def.DockerImageTag)

	p, err := openProject(opts.ProjectPath)
	if err != nil {
		return nil, err
	}

	return p.generate(&render.ConnectorJob{Name: opts.ResourceName, Definition: def}, opts.Force, opts.Confirm)
}

func validateConnectorOptions(opts GenerateConnectorOptions) error {
	if opts.ProjectPath == "" {
		return fmt.Errorf("project path cannot be empty")
	}
	if opts.DefinitionType != definition.TypeSource && opts.DefinitionType != definition.TypeDestination {
		return fmt.Errorf("definition type must be %s or %s, got %q",
			definition.TypeSource, definition.TypeDestination, opts.DefinitionType)
	}
	if opts.DefinitionPath == "" {
		return fmt.Errorf("definition file cannot be empty")
	}
	return config.ValidateResourceName(opts.ResourceName)
}

// GenerateConnectionOptions contains options for rendering a connection
// configuration.
type GenerateConnectionOptions struct {
	// ProjectPath is the project root.
	ProjectPath string
	// ConnectionName names the connection directory.
	ConnectionName string
	// SourcePath is the rendered source configuration.yaml.
	SourcePath string
	// DestinationPath is the rendered destination configuration.yaml.
	DestinationPath string
	// CatalogPath is the source catalog file (JSON or YAML).
	CatalogPath string
	// DestinationDefinitionPath is the destination connector definition
	// (optional). Its capabilities gate the operations block.
	DestinationDefinitionPath string
	// Force replaces an existing configuration without asking.
	Force bool
	// Confirm is asked before replacing an existing configuration (optional).
	Confirm ConfirmFunc
}

// GenerateConnection renders <project>/connections/<name>/configuration.yaml
// linking a rendered source and destination.
func GenerateConnection(ctx context.Context, opts GenerateConnectionOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] GenerateConnection workflow start")
	debug.DebugValue("[app] ConnectionName", opts.ConnectionName)
	debug.DebugValue("[app] SourcePath", opts.SourcePath)
	debug.DebugValue("[app] DestinationPath", opts.DestinationPath)
	debug.DebugValue("[app] CatalogPath", opts.CatalogPath)

	if err := validateConnectionOptions(opts); err != nil {
		return nil, NewValidationError("invalid generate options", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewGenerateError("generate cancelled", err)
	}

	source, err := loadResource(opts.SourcePath, definition.TypeSource)
	if err != nil {
		return nil, err
	}
	destination, err := loadResource(opts.DestinationPath, definition.TypeDestination)
	if err != nil {
		return nil, err
	}

	catalog, err := definition.LoadCatalog(opts.CatalogPath)
	if err != nil {
		return nil, NewGenerateError("failed to load catalog", err)
	}
	debug.Debug("[app] Catalog has %d streams", len(catalog.Streams))

	caps, err := destinationCapabilities(opts.DestinationDefinitionPath, destination)
	if err != nil {
		return nil, err
	}

	p, err := openProject(opts.ProjectPath)
	if err != nil {
		return nil, err
	}

	job := &render.ConnectionJob{
		Name: opts.ConnectionName,
		Source: definition.Source{
			Catalog:           catalog,
			ConfigurationPath: p.projectRelative(source.ConfigurationPath),
		},
		Destination: definition.Destination{
			ConfigurationPath: p.projectRelative(destination.ConfigurationPath),
			Definition:        caps,
		},
	}
	return p.generate(job, opts.Force, opts.Confirm)
}

func validateConnectionOptions(opts GenerateConnectionOptions) error {
	if opts.ProjectPath == "" {
		return fmt.Errorf("project path cannot be empty")
	}
	if opts.SourcePath == "" {
		return fmt.Errorf("source configuration cannot be empty")
	}
	if opts.DestinationPath == "" {
		return fmt.Errorf("destination configuration cannot be empty")
	}
	if opts.CatalogPath == "" {
		return fmt.Errorf("catalog file cannot be empty")
	}
	return config.ValidateResourceName(opts.ConnectionName)
}

func loadResource(path, typ string) (*definition.Resource, error) {
	res, err := definition.LoadResource(path)
	if err != nil {
		return nil, NewGenerateError(fmt.Sprintf("failed to load %s configuration", typ), err)
	}
	if err := res.ExpectType(typ); err != nil {
		return nil, NewValidationError("definition type mismatch", err)
	}
	debug.Debug("[app] Loaded %s %s from %s", typ, res.ResourceName, res.ConfigurationPath)
	return res, nil
}

// destinationCapabilities reads the normalization and dbt flags from the
// destination definition. Without a definition both are off.
func destinationCapabilities(path string, destination *definition.Resource) (definition.Capabilities, error) {
	if path == "" {
		return definition.Capabilities{}, nil
	}

	def, err := definition.LoadConnectorDefinition(path)
	if err != nil {
		return definition.Capabilities{}, NewGenerateError("failed to load destination definition", err)
	}
	if err := def.ExpectType(definition.TypeDestination); err != nil {
		return definition.Capabilities{}, NewValidationError("definition type mismatch", err)
	}
	if def.ID != "" && destination.DefinitionID != "" && def.ID != destination.DefinitionID {
		return definition.Capabilities{}, NewValidationError(
			fmt.Sprintf("destination %s uses definition %s, got %s",
				destination.ResourceName, destination.DefinitionID, def.ID), nil)
	}
	caps := def.Capabilities()
	debug.DebugJSON("[app] Destination capabilities", caps)
	return caps, nil
}
