// Package render turns connector definitions and connections into
// configuration.yaml skeletons inside an octavia project.
package render

import (
	"fmt"
	"path/filepath"

	"github.com/tacogips/octavia/internal/debug"
	"github.com/tacogips/octavia/internal/definition"
	"github.com/tacogips/octavia/internal/schema"
)

// ConfigurationFileName is the file written for every resource.
const ConfigurationFileName = "configuration.yaml"

// Job is a render job. The set of jobs is closed: ConnectorJob and
// ConnectionJob.
type Job interface {
	// ResourceName names the resource directory.
	ResourceName() string
	// DefinitionType selects the pluralized project subdirectory.
	DefinitionType() string

	job()
}

// ConnectorJob renders the configuration of a source or destination.
type ConnectorJob struct {
	Name       string
	Definition *definition.ConnectorDefinition
}

// ResourceName implements Job.
func (j *ConnectorJob) ResourceName() string { return j.Name }

// DefinitionType implements Job.
func (j *ConnectorJob) DefinitionType() string { return j.Definition.Type }

func (*ConnectorJob) job() {}

// ConnectionJob renders the configuration of a connection.
type ConnectionJob struct {
	Name        string
	Source      definition.Source
	Destination definition.Destination
}

// ResourceName implements Job.
func (j *ConnectionJob) ResourceName() string { return j.Name }

// DefinitionType implements Job.
func (j *ConnectionJob) DefinitionType() string { return definition.TypeConnection }

func (*ConnectionJob) job() {}

// connectorData is the data of the connector template.
type connectorData struct {
	ResourceName        string
	Definition          *definition.ConnectorDefinition
	ConfigurationFields [][]*schema.Field
}

// connectionData is the data of the connection template.
type connectionData struct {
	ConnectionName               string
	SourceConfigurationPath      string
	DestinationConfigurationPath string
	Catalog                      string
	SupportsNormalization        bool
	SupportsDbt                  bool
}

// Renderer renders jobs with an Engine and persists them with a Writer.
type Renderer struct {
	engine *Engine
	writer Writer
}

// NewRenderer creates a Renderer. A nil writer uses the filesystem.
func NewRenderer(engine *Engine, writer Writer) *Renderer {
	if writer == nil {
		writer = NewFileWriter()
	}
	return &Renderer{engine: engine, writer: writer}
}

// OutputDir returns <projectPath>/<definitionType>s/<resourceName>.
func OutputDir(projectPath, definitionType, resourceName string) string {
	return filepath.Join(projectPath, definitionType+"s", resourceName)
}

// OutputPath returns the configuration file path of a resource.
func OutputPath(projectPath, definitionType, resourceName string) string {
	return filepath.Join(OutputDir(projectPath, definitionType, resourceName), ConfigurationFileName)
}

// Render executes the template of job.
func (r *Renderer) Render(job Job) ([]byte, error) {
	switch j := job.(type) {
	case *ConnectorJob:
		return r.renderConnector(j)
	case *ConnectionJob:
		return r.renderConnection(j)
	default:
		return nil, fmt.Errorf("unsupported render job %T", job)
	}
}

// WriteYAML renders job into its configuration file under projectPath,
// creating directories as needed and replacing any existing file. It
// returns the written path.
func (r *Renderer) WriteYAML(projectPath string, job Job) (string, error) {
	if job.ResourceName() == "" {
		return "", newRenderError(RenderPathError, "resource name cannot be empty", "", nil)
	}

	dir := OutputDir(projectPath, job.DefinitionType(), job.ResourceName())
	if err := r.writer.CreateDir(dir); err != nil {
		return "", err
	}

	rendered, err := r.Render(job)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ConfigurationFileName)
	if err := r.writer.WriteFile(path, rendered); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Renderer) renderConnector(job *ConnectorJob) ([]byte, error) {
	debug.Debug("[render] Rendering %s %s", job.Definition.Type, job.Name)

	fields, err := schema.ParseConnectionSpecification(job.Definition.Specification.ConnectionSpecification)
	if err != nil {
		return nil, err
	}
	debug.DebugDump("[render] Configuration fields", fields)

	return r.engine.Execute(ConnectorTemplate, connectorData{
		ResourceName:        job.Name,
		Definition:          job.Definition,
		ConfigurationFields: fields,
	})
}

func (r *Renderer) renderConnection(job *ConnectionJob) ([]byte, error) {
	debug.Debug("[render] Rendering connection %s", job.Name)

	catalog := job.Source.Catalog
	if catalog == nil {
		catalog = &definition.Catalog{}
	}
	catalogYAML, err := catalog.ToYAML()
	if err != nil {
		return nil, newRenderError(RenderTemplateFailed, "failed to serialize catalog", "", err)
	}

	return r.engine.Execute(ConnectionTemplate, connectionData{
		ConnectionName:               job.Name,
		SourceConfigurationPath:      job.Source.ConfigurationPath,
		DestinationConfigurationPath: job.Destination.ConfigurationPath,
		Catalog:                      catalogYAML,
		SupportsNormalization:        job.Destination.Definition.SupportsNormalization,
		SupportsDbt:                  job.Destination.Definition.SupportsDbt,
	})
}
