package render

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tacogips/octavia/internal/definition"
	"github.com/tacogips/octavia/internal/schema"
	"gopkg.in/yaml.v3"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	engine, err := DefaultEngine()
	require.NoError(t, err)
	return NewRenderer(engine, nil)
}

func testDefinition(t *testing.T, spec string) *definition.ConnectorDefinition {
	t.Helper()
	m, err := schema.ParseMetadata([]byte(spec))
	require.NoError(t, err)
	return &definition.ConnectorDefinition{
		Type:             definition.TypeSource,
		ID:               "abc",
		Name:             "Test",
		DockerRepository: "airbyte/source-test",
		DockerImageTag:   "1.0.0",
		DocumentationURL: "https://docs.example.com",
		Specification:    definition.Specification{ConnectionSpecification: m},
	}
}

const fullSpec = `{
  "required": ["host", "credentials"],
  "properties": {
    "host": {"type": "string", "description": "Hostname", "examples": ["db.local"]},
    "port": {"type": "integer", "default": 5432},
    "password": {"type": "string", "airbyte_secret": true},
    "tunnel": {"type": "object", "properties": {"enabled": {"type": "boolean", "default": false}}},
    "credentials": {
      "type": "object",
      "oneOf": [
        {"properties": {"auth_type": {"type": "string", "const": "key"}, "api_key": {"type": "string", "airbyte_secret": true}}},
        {"properties": {"auth_type": {"const": "none"}}}
      ]
    },
    "streams": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {"name": {"type": "string"}, "format": {"type": "string", "default": "csv"}}
      }
    }
  }
}`

const fullSpecRendered = `# Configuration for airbyte/source-test
# Documentation about this connector can be found at https://docs.example.com
resource_name: "my_source"
definition_type: source
definition_id: abc
definition_image: airbyte/source-test
definition_version: 1.0.0

# EDIT THE CONFIGURATION BELOW!
configuration:
  host: # REQUIRED | string | Hostname | Example: db.local
  port: 5432 # OPTIONAL | integer
  password: ${PASSWORD} # SECRET (please store in environment variables) | OPTIONAL | string
  tunnel: # OPTIONAL | object
    enabled: false # OPTIONAL | boolean
  credentials: # REQUIRED | object
    ## -------- Pick one valid structure among the examples below: --------
    auth_type: "key" # OPTIONAL | string
    api_key: ${API_KEY} # SECRET (please store in environment variables) | OPTIONAL | string
    ## -------- Another valid structure for credentials: --------
    # auth_type: "none" # OPTIONAL
  streams: # OPTIONAL | array
    - name: # REQUIRED | string
      format: "csv" # OPTIONAL | string
`

func TestRender_Connector(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(&ConnectorJob{Name: "my_source", Definition: testDefinition(t, fullSpec)})

	require.NoError(t, err)
	assert.Equal(t, fullSpecRendered, string(out))
}

func TestRender_ConnectorIsValidYAML(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(&ConnectorJob{Name: "my_source", Definition: testDefinition(t, fullSpec)})
	require.NoError(t, err)

	var doc struct {
		ResourceName   string         `yaml:"resource_name"`
		DefinitionType string         `yaml:"definition_type"`
		Configuration  map[string]any `yaml:"configuration"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))

	assert.Equal(t, "my_source", doc.ResourceName)
	assert.Equal(t, "source", doc.DefinitionType)
	assert.Nil(t, doc.Configuration["host"])
	assert.Equal(t, 5432, doc.Configuration["port"])
	assert.Equal(t, "${PASSWORD}", doc.Configuration["password"])
	assert.Equal(t, map[string]any{"enabled": false}, doc.Configuration["tunnel"])
	assert.Equal(t, map[string]any{"auth_type": "key", "api_key": "${API_KEY}"}, doc.Configuration["credentials"])
	assert.Equal(t, []any{map[string]any{"name": nil, "format": "csv"}}, doc.Configuration["streams"])
}

func TestRender_ConnectorTopLevelOneOf(t *testing.T) {
	r := newTestRenderer(t)
	def := testDefinition(t, `{
		"oneOf": [
			{"required": ["api_key"], "properties": {"api_key": {"type": "string", "airbyte_secret": true}}},
			{"properties": {"username": {"type": "string"}, "region": {"type": "string", "default": "eu"}}}
		]
	}`)

	out, err := r.Render(&ConnectorJob{Name: "multi", Definition: def})

	require.NoError(t, err)
	assert.Contains(t, string(out), `configuration:
  ## -------- Pick one valid structure among the examples below: --------
  api_key: ${API_KEY} # SECRET (please store in environment variables) | REQUIRED | string
  ## -------- Another valid structure for configuration: --------
  # username: # OPTIONAL | string
  # region: "eu" # OPTIONAL | string
`)

	var doc struct {
		Configuration map[string]any `yaml:"configuration"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, map[string]any{"api_key": "${API_KEY}"}, doc.Configuration)
}

func TestRender_CommentedBlocksStayCommented(t *testing.T) {
	r := newTestRenderer(t)
	def := testDefinition(t, `{
		"oneOf": [
			{"properties": {"a": {"type": "string"}}},
			{"properties": {
				"nested": {"type": "object", "properties": {"b": {"type": "string"}}},
				"list": {"type": "array", "items": {"type": "object", "properties": {"c": {}, "d": {}}}}
			}}
		]
	}`)

	out, err := r.Render(&ConnectorJob{Name: "commented", Definition: def})

	require.NoError(t, err)
	assert.Contains(t, string(out), `  # nested: # OPTIONAL | object
    # b: # OPTIONAL | string
  # list: # OPTIONAL | array
    # - c: # OPTIONAL
      # d: # OPTIONAL
`)
}

func TestRender_SecretConstIsQuoted(t *testing.T) {
	r := newTestRenderer(t)
	def := testDefinition(t, `{
		"properties": {
			"token": {"type": "string", "airbyte_secret": true, "const": "a: b"},
			"auth": {"airbyte_secret": true, "const": {"kind": "key", "scopes": ["read"]}},
			"api_key": {"type": "string", "airbyte_secret": true}
		}
	}`)

	out, err := r.Render(&ConnectorJob{Name: "secrets", Definition: def})

	require.NoError(t, err)
	assert.Contains(t, string(out), "  token: \"a: b\" # ")
	assert.Contains(t, string(out), `  auth: {"kind":"key","scopes":["read"]} # `)
	assert.Contains(t, string(out), "  api_key: ${API_KEY} # ")

	var doc struct {
		Configuration map[string]any `yaml:"configuration"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "a: b", doc.Configuration["token"])
	assert.Equal(t, map[string]any{"kind": "key", "scopes": []any{"read"}}, doc.Configuration["auth"])
	assert.Equal(t, "${API_KEY}", doc.Configuration["api_key"])
}

func TestRender_ConnectorMissingProperties(t *testing.T) {
	r := newTestRenderer(t)

	_, err := r.Render(&ConnectorJob{Name: "broken", Definition: testDefinition(t, `{"oneOf": [{"title": "no properties"}]}`)})

	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrMissingProperties))
}

func TestWriteYAML_ConnectorPath(t *testing.T) {
	project := t.TempDir()
	r := newTestRenderer(t)
	job := &ConnectorJob{Name: "my_source", Definition: testDefinition(t, fullSpec)}

	path, err := r.WriteYAML(project, job)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(project, "sources", "my_source", "configuration.yaml"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fullSpecRendered, string(content))

	// A second render into the same resource reuses the directory.
	again, err := r.WriteYAML(project, job)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestWriteYAML_DestinationPath(t *testing.T) {
	project := t.TempDir()
	def := testDefinition(t, `{"properties": {"dataset": {"type": "string"}}}`)
	def.Type = definition.TypeDestination

	path, err := newTestRenderer(t).WriteYAML(project, &ConnectorJob{Name: "warehouse", Definition: def})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(project, "destinations", "warehouse", "configuration.yaml"), path)
}

func TestWriteYAML_EmptyName(t *testing.T) {
	_, err := newTestRenderer(t).WriteYAML(t.TempDir(), &ConnectorJob{Definition: testDefinition(t, fullSpec)})

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, RenderPathError, renderErr.Type)
}

func testCatalog(streams ...string) *definition.Catalog {
	catalog := &definition.Catalog{}
	for _, name := range streams {
		m := schema.NewMetadata()
		m.Set("type", "object")
		catalog.Streams = append(catalog.Streams, definition.StreamAndConfiguration{
			Stream: definition.Stream{
				Name:               name,
				JSONSchema:         m,
				SupportedSyncModes: []string{"full_refresh"},
			},
			Config: &definition.StreamConfig{
				SyncMode:            "full_refresh",
				DestinationSyncMode: "append",
				AliasName:           name,
				Selected:            true,
			},
		})
	}
	return catalog
}

func testConnectionJob(catalog *definition.Catalog, caps definition.Capabilities) *ConnectionJob {
	return &ConnectionJob{
		Name: "my_connection",
		Source: definition.Source{
			Catalog:           catalog,
			ConfigurationPath: "sources/my_source/configuration.yaml",
		},
		Destination: definition.Destination{
			ConfigurationPath: "destinations/warehouse/configuration.yaml",
			Definition:        caps,
		},
	}
}

func TestRender_Connection(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(testConnectionJob(testCatalog("pokemon"), definition.Capabilities{}))

	require.NoError(t, err)
	assert.Contains(t, string(out), "definition_type: connection\n")
	assert.Contains(t, string(out), `source_configuration_path: "sources/my_source/configuration.yaml"`)
	assert.NotContains(t, string(out), "operations:")
	assert.Contains(t, string(out), "  sync_catalog: # OPTIONAL | object")
	assert.Contains(t, string(out), "\n    streams:\n      - stream:\n          name: pokemon\n")

	var doc struct {
		ResourceName                 string `yaml:"resource_name"`
		DestinationConfigurationPath string `yaml:"destination_configuration_path"`
		Configuration                struct {
			Status      string `yaml:"status"`
			SyncCatalog struct {
				Streams []struct {
					Stream struct {
						Name string `yaml:"name"`
					} `yaml:"stream"`
					Config struct {
						Selected bool `yaml:"selected"`
					} `yaml:"config"`
				} `yaml:"streams"`
			} `yaml:"sync_catalog"`
		} `yaml:"configuration"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "my_connection", doc.ResourceName)
	assert.Equal(t, "destinations/warehouse/configuration.yaml", doc.DestinationConfigurationPath)
	assert.Equal(t, "active", doc.Configuration.Status)
	require.Len(t, doc.Configuration.SyncCatalog.Streams, 1)
	assert.Equal(t, "pokemon", doc.Configuration.SyncCatalog.Streams[0].Stream.Name)
	assert.True(t, doc.Configuration.SyncCatalog.Streams[0].Config.Selected)
}

func TestRender_ConnectionOperations(t *testing.T) {
	tests := []struct {
		name              string
		caps              definition.Capabilities
		wantNormalization bool
		wantDbt           bool
	}{
		{"none", definition.Capabilities{}, false, false},
		{"normalization only", definition.Capabilities{SupportsNormalization: true}, true, false},
		{"dbt only", definition.Capabilities{SupportsDbt: true}, false, true},
		{"both", definition.Capabilities{SupportsNormalization: true, SupportsDbt: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newTestRenderer(t).Render(testConnectionJob(testCatalog("a"), tt.caps))
			require.NoError(t, err)

			var doc struct {
				Configuration struct {
					Operations []struct {
						OperatorConfiguration struct {
							OperatorType string `yaml:"operator_type"`
						} `yaml:"operator_configuration"`
					} `yaml:"operations"`
				} `yaml:"configuration"`
			}
			require.NoError(t, yaml.Unmarshal(out, &doc))

			var types []string
			for _, op := range doc.Configuration.Operations {
				types = append(types, op.OperatorConfiguration.OperatorType)
			}
			assert.Equal(t, tt.wantNormalization, slices.Contains(types, "normalization"))
			assert.Equal(t, tt.wantDbt, slices.Contains(types, "dbt"))
		})
	}
}

func TestWriteYAML_ConnectionOverwrites(t *testing.T) {
	project := t.TempDir()
	r := newTestRenderer(t)

	path, err := r.WriteYAML(project, testConnectionJob(testCatalog("first_stream"), definition.Capabilities{}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(project, "connections", "my_connection", "configuration.yaml"), path)

	again, err := r.WriteYAML(project, testConnectionJob(testCatalog("second_stream"), definition.Capabilities{}))
	require.NoError(t, err)
	assert.Equal(t, path, again)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "second_stream")
	assert.NotContains(t, string(content), "first_stream")
}

func TestRender_ConnectionWithoutCatalog(t *testing.T) {
	out, err := newTestRenderer(t).Render(testConnectionJob(nil, definition.Capabilities{}))

	require.NoError(t, err)
	assert.Contains(t, string(out), "sync_catalog: # OPTIONAL")
	assert.Contains(t, string(out), "streams: []")
}

type failingWriter struct {
	Writer
	writes int
}

func (w *failingWriter) CreateDir(string) error { return nil }

func (w *failingWriter) WriteFile(path string, _ []byte) error {
	w.writes++
	return newRenderError(RenderWriteFailed, "disk full", path, nil)
}

func TestWriteYAML_WriteFailurePropagates(t *testing.T) {
	engine, err := DefaultEngine()
	require.NoError(t, err)
	writer := &failingWriter{}
	r := NewRenderer(engine, writer)

	_, err = r.WriteYAML("/project", testConnectionJob(testCatalog("a"), definition.Capabilities{}))

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, RenderWriteFailed, renderErr.Type)
	assert.Equal(t, 1, writer.writes)
}

func TestWriteYAML_RenderFailureSkipsWrite(t *testing.T) {
	engine, err := DefaultEngine()
	require.NoError(t, err)
	writer := &failingWriter{}
	r := NewRenderer(engine, writer)

	_, err = r.WriteYAML("/project", &ConnectorJob{Name: "broken", Definition: testDefinition(t, `{"type": "object"}`)})

	assert.True(t, errors.Is(err, schema.ErrMissingProperties))
	assert.Equal(t, 0, writer.writes)
}

func TestNewEngine_CustomTemplates(t *testing.T) {
	fsys := fstest.MapFS{
		ConnectorTemplate:  {Data: []byte(`{{ .ResourceName }}:{{ range index .ConfigurationFields 0 }} {{ .Name }}{{ end }}`)},
		ConnectionTemplate: {Data: []byte(`{{ .ConnectionName }}`)},
	}
	engine, err := NewEngine(fsys)
	require.NoError(t, err)

	out, err := NewRenderer(engine, nil).Render(&ConnectorJob{
		Name:       "custom",
		Definition: testDefinition(t, `{"properties": {"b": {}, "a": {}}}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "custom: b a", string(out))
}

func TestNewEngine_MissingTemplate(t *testing.T) {
	_, err := NewEngine(fstest.MapFS{ConnectorTemplate: {Data: []byte("x")}})

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, RenderTemplateFailed, renderErr.Type)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "a:\n    b: 1\n\n    c: 2", indent(4, "a:\n  b: 1\n\nc: 2\n"))
	assert.Equal(t, "single", indent(4, "single"))
}

func TestLinePrefix(t *testing.T) {
	tests := []struct {
		name     string
		block    fieldBlock
		index    int
		expected string
	}{
		{"root", fieldBlock{Depth: 1}, 0, "  "},
		{"commented", fieldBlock{Depth: 2, Commented: true}, 1, "    # "},
		{"first list item", fieldBlock{Depth: 3, ListItem: true}, 0, "    - "},
		{"next list item", fieldBlock{Depth: 3, ListItem: true}, 1, "      "},
		{"commented list item", fieldBlock{Depth: 3, ListItem: true, Commented: true}, 0, "    # - "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, linePrefix(tt.block, tt.index))
		})
	}
}
