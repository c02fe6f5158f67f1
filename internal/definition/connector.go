// Package definition models the inputs of the renderers: connector
// definitions, source catalogs and already rendered resource files.
package definition

import (
	"fmt"

	"github.com/tacogips/octavia/internal/schema"
)

// Definition types. Each one owns a pluralized directory under the project root.
const (
	TypeSource      = "source"
	TypeDestination = "destination"
	TypeConnection  = "connection"
)

// Specification is a connector's specification.
type Specification struct {
	// DocumentationURL links to the connector documentation.
	DocumentationURL string `yaml:"documentation_url,omitempty"`
	// ConnectionSpecification is the JSON schema of the connector configuration.
	ConnectionSpecification *schema.Metadata `yaml:"connection_specification"`
}

// ConnectorDefinition describes a source or destination connector.
type ConnectorDefinition struct {
	Type                  string        `yaml:"type"`
	ID                    string        `yaml:"id"`
	Name                  string        `yaml:"name"`
	DockerRepository      string        `yaml:"docker_repository"`
	DockerImageTag        string        `yaml:"docker_image_tag"`
	DocumentationURL      string        `yaml:"documentation_url,omitempty"`
	SupportsNormalization bool          `yaml:"supports_normalization,omitempty"`
	SupportsDbt           bool          `yaml:"supports_dbt,omitempty"`
	Specification         Specification `yaml:"specification"`
}

// Capabilities returns the destination capability flags.
func (d *ConnectorDefinition) Capabilities() Capabilities {
	return Capabilities{
		SupportsNormalization: d.SupportsNormalization,
		SupportsDbt:           d.SupportsDbt,
	}
}

// DocumentationLink returns the definition's documentation URL, falling
// back to the specification's.
func (d *ConnectorDefinition) DocumentationLink() string {
	if d.DocumentationURL != "" {
		return d.DocumentationURL
	}
	return d.Specification.DocumentationURL
}

// LoadConnectorDefinition loads a connector definition from a JSON or YAML file.
func LoadConnectorDefinition(path string) (*ConnectorDefinition, error) {
	var def ConnectorDefinition
	if err := decodeFile(path, &def, "connector definition"); err != nil {
		return nil, err
	}

	if def.Type != TypeSource && def.Type != TypeDestination {
		return nil, newDefinitionError(DefinitionInvalid,
			fmt.Sprintf("definition type must be %q or %q, got %q", TypeSource, TypeDestination, def.Type),
			path, nil)
	}
	if def.Specification.ConnectionSpecification == nil {
		return nil, newDefinitionError(DefinitionInvalid,
			"definition has no specification.connection_specification", path, nil)
	}
	return &def, nil
}

// ExpectType returns a DefinitionTypeMismatch error unless the definition is of type typ.
func (d *ConnectorDefinition) ExpectType(typ string) error {
	if d.Type != typ {
		return newDefinitionError(DefinitionTypeMismatch,
			fmt.Sprintf("%s is a %s definition, expected %s", d.Name, d.Type, typ), "", nil)
	}
	return nil
}
