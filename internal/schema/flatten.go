package schema

import (
	"fmt"

	"github.com/tacogips/octavia/internal/debug"
)

// ParseFields flattens properties into Fields, in property order. A field is
// required when its name appears in required.
func ParseFields(required []string, properties *Metadata) []*Field {
	requiredSet := make(map[string]struct{}, len(required))
	for _, name := range required {
		requiredSet[name] = struct{}{}
	}

	fields := make([]*Field, 0, properties.Len())
	for _, name := range properties.Keys() {
		metadata, _ := properties.Mapping(name)
		_, isRequired := requiredSet[name]
		fields = append(fields, NewField(name, isRequired, metadata))
	}
	return fields
}

// ObjectFields flattens the properties of an object schema. It returns nil
// when the schema has no properties.
func ObjectFields(metadata *Metadata) []*Field {
	properties, ok := metadata.Mapping(keywordProperties)
	if !ok || properties.Len() == 0 {
		return nil
	}
	return ParseFields(RequiredNames(metadata), properties)
}

// RequiredNames returns the required keyword as a list of names.
func RequiredNames(metadata *Metadata) []string {
	list, ok := metadata.List(keywordRequired)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(list))
	for _, v := range list {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names
}

// ParseConnectionSpecification flattens a connector's connection
// specification into root field lists. A top-level oneOf yields one root per
// alternative; otherwise the whole schema yields a single root.
func ParseConnectionSpecification(spec *Metadata) ([][]*Field, error) {
	if alternatives, ok := spec.List(keywordOneOf); ok && len(alternatives) > 0 {
		debug.Debug("[schema] Top-level oneOf with %d alternatives", len(alternatives))
		roots := make([][]*Field, 0, len(alternatives))
		for i, alternative := range alternatives {
			m, _ := alternative.(*Metadata)
			properties, ok := m.Mapping(keywordProperties)
			if !ok {
				return nil, newSchemaError(MissingProperties, fmt.Sprintf("oneOf[%d]", i),
					"oneOf alternative cannot be rendered", ErrMissingProperties)
			}
			roots = append(roots, ParseFields(RequiredNames(m), properties))
		}
		return roots, nil
	}

	properties, ok := spec.Mapping(keywordProperties)
	if !ok {
		return nil, newSchemaError(MissingProperties, "",
			"connection specification cannot be rendered", ErrMissingProperties)
	}
	debug.Debug("[schema] Flattening %d root properties", properties.Len())
	return [][]*Field{ParseFields(RequiredNames(spec), properties)}, nil
}
