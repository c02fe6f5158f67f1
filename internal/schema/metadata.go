package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Metadata is an insertion-ordered, string-keyed map of schema keywords.
//
// Nested mappings are stored as *Metadata, sequences as []any and scalars as
// the plain Go values produced by yaml.v3 (string, int, float64, bool, nil).
// Decoding goes through yaml.Node so that the key order of the source
// document survives, for JSON input as well as YAML.
//
// All lookups on a nil *Metadata behave like lookups on an empty map.
type Metadata struct {
	keys   []string
	values map[string]any
}

// NewMetadata creates an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]any)}
}

// ParseMetadata decodes a JSON or YAML mapping into Metadata.
func ParseMetadata(data []byte) (*Metadata, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, newSchemaError(InvalidMetadata, "", "failed to parse schema document", err)
	}
	m := NewMetadata()
	if err := m.UnmarshalYAML(&node); err != nil {
		return nil, err
	}
	return m, nil
}

// Set stores value under key. New keys are appended to the key order;
// existing keys keep their position.
func (m *Metadata) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Keys returns the keys in insertion order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Has reports whether key is present, even if its value is null.
func (m *Metadata) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value stored under key. A missing key and an explicit
// null are both reported as absent.
func (m *Metadata) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Mapping returns the nested mapping stored under key.
func (m *Metadata) Mapping(key string) (*Metadata, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Metadata)
	return nested, ok
}

// List returns the sequence stored under key.
func (m *Metadata) List(key string) ([]any, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

// String returns the string stored under key.
func (m *Metadata) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns true only if key holds the boolean true.
func (m *Metadata) Bool(key string) bool {
	v, ok := m.Get(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Metadata) UnmarshalYAML(node *yaml.Node) error {
	node = unwrapNode(node)
	if node == nil {
		*m = Metadata{values: make(map[string]any)}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return newSchemaError(InvalidMetadata, "",
			fmt.Sprintf("line %d: expected a mapping", node.Line), nil)
	}
	decoded, err := decodeNode(node)
	if err != nil {
		return err
	}
	*m = *decoded.(*Metadata)
	return nil
}

// MarshalYAML implements yaml.Marshaler, keeping key order.
func (m *Metadata) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return node, nil
	}
	for _, key := range m.keys {
		var value yaml.Node
		if err := value.Encode(m.values[key]); err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&value)
	}
	return node, nil
}

// UnmarshalJSON implements json.Unmarshaler. JSON is parsed as YAML.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return newSchemaError(InvalidMetadata, "", "failed to parse JSON document", err)
	}
	return m.UnmarshalYAML(&node)
}

// MarshalJSON implements json.Marshaler, keeping key order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeJSON(key)
		if err != nil {
			return nil, err
		}
		v, err := encodeJSON(m.values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeJSON encodes v without HTML escaping and without a trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func unwrapNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

func decodeNode(node *yaml.Node) (any, error) {
	node = unwrapNode(node)
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		m := NewMetadata()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := decodeNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(node.Content[i].Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, newSchemaError(InvalidMetadata, "",
				fmt.Sprintf("line %d: invalid scalar", node.Line), err)
		}
		return value, nil
	}

	return nil, newSchemaError(InvalidMetadata, "",
		fmt.Sprintf("line %d: unsupported node kind %d", node.Line, node.Kind), nil)
}
