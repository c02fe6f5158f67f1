package definition

import (
	"fmt"
	"path/filepath"
)

// Resource is the header of a rendered configuration.yaml.
type Resource struct {
	ResourceName      string `yaml:"resource_name"`
	DefinitionType    string `yaml:"definition_type"`
	DefinitionID      string `yaml:"definition_id,omitempty"`
	DefinitionImage   string `yaml:"definition_image,omitempty"`
	DefinitionVersion string `yaml:"definition_version,omitempty"`

	// ConfigurationPath is the file the resource was read from.
	ConfigurationPath string `yaml:"-"`
}

// LoadResource reads the header of a rendered configuration file.
func LoadResource(path string) (*Resource, error) {
	var res Resource
	if err := decodeFile(path, &res, "resource configuration"); err != nil {
		return nil, err
	}
	if res.ResourceName == "" || res.DefinitionType == "" {
		return nil, newDefinitionError(DefinitionInvalid,
			"resource configuration needs resource_name and definition_type", path, nil)
	}
	res.ConfigurationPath = filepath.Clean(path)
	return &res, nil
}

// ExpectType returns a DefinitionTypeMismatch error unless the resource is of type typ.
func (r *Resource) ExpectType(typ string) error {
	if r.DefinitionType != typ {
		return newDefinitionError(DefinitionTypeMismatch,
			fmt.Sprintf("%s is a %s, expected a %s", r.ResourceName, r.DefinitionType, typ),
			r.ConfigurationPath, nil)
	}
	return nil
}

// Capabilities are the destination flags that gate connection operations.
type Capabilities struct {
	SupportsNormalization bool
	SupportsDbt           bool
}

// Source is the source side of a connection.
type Source struct {
	Catalog           *Catalog
	ConfigurationPath string
}

// Destination is the destination side of a connection.
type Destination struct {
	ConfigurationPath string
	Definition        Capabilities
}
