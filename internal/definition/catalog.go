package definition

import (
	"bytes"
	"fmt"

	"github.com/tacogips/octavia/internal/schema"
	"gopkg.in/yaml.v3"
)

// Catalog describes the streams a source can emit.
type Catalog struct {
	Streams []StreamAndConfiguration `yaml:"streams"`
}

// StreamAndConfiguration pairs a stream with its sync configuration.
type StreamAndConfiguration struct {
	Stream Stream        `yaml:"stream"`
	Config *StreamConfig `yaml:"config,omitempty"`
}

// Stream is a source stream and its record schema.
type Stream struct {
	Name                    string           `yaml:"name"`
	JSONSchema              *schema.Metadata `yaml:"json_schema"`
	SupportedSyncModes      []string         `yaml:"supported_sync_modes"`
	SourceDefinedCursor     *bool            `yaml:"source_defined_cursor,omitempty"`
	DefaultCursorField      []string         `yaml:"default_cursor_field,omitempty"`
	SourceDefinedPrimaryKey [][]string       `yaml:"source_defined_primary_key,omitempty"`
	Namespace               string           `yaml:"namespace,omitempty"`
}

// StreamConfig is the user-editable sync configuration of a stream.
type StreamConfig struct {
	SyncMode            string     `yaml:"sync_mode"`
	CursorField         []string   `yaml:"cursor_field"`
	DestinationSyncMode string     `yaml:"destination_sync_mode"`
	PrimaryKey          [][]string `yaml:"primary_key"`
	AliasName           string     `yaml:"alias_name"`
	Selected            bool       `yaml:"selected"`
}

// LoadCatalog loads a catalog from a JSON or YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	var catalog Catalog
	if err := decodeFile(path, &catalog, "catalog"); err != nil {
		return nil, err
	}
	for i, s := range catalog.Streams {
		if s.Stream.Name == "" {
			return nil, newDefinitionError(DefinitionInvalid,
				fmt.Sprintf("stream #%d has no name", i), path, nil)
		}
	}
	return &catalog, nil
}

// ToYAML dumps the catalog as block-style YAML with two-space indentation.
func (c *Catalog) ToYAML() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.String(), nil
}
