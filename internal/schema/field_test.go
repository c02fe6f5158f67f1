package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMetadata(t *testing.T, doc string) *Metadata {
	t.Helper()
	m, err := ParseMetadata([]byte(doc))
	require.NoError(t, err)
	return m
}

func TestNewField_Comment(t *testing.T) {
	tests := []struct {
		name     string
		required bool
		doc      string
		expected string
	}{
		{
			name:     "required only",
			required: true,
			doc:      `{}`,
			expected: "REQUIRED",
		},
		{
			name:     "optional with type",
			doc:      `{"type": "string"}`,
			expected: "OPTIONAL | string",
		},
		{
			name:     "type list",
			doc:      `{"type": ["string", "null"]}`,
			expected: "OPTIONAL | string, null",
		},
		{
			name:     "description newlines stripped",
			required: true,
			doc:      `{"type": "integer", "description": "first line\nsecond line"}`,
			expected: "REQUIRED | integer | first linesecond line",
		},
		{
			name:     "multiple examples",
			doc:      `{"type": "string", "examples": ["a", 2, true]}`,
			expected: "OPTIONAL | string | Examples: a, 2, true",
		},
		{
			name:     "single example",
			doc:      `{"examples": ["2021-01-01"]}`,
			expected: "OPTIONAL | Example: 2021-01-01",
		},
		{
			name:     "scalar example",
			doc:      `{"examples": 42}`,
			expected: "OPTIONAL | Example: 42",
		},
		{
			name:     "empty examples list",
			doc:      `{"examples": []}`,
			expected: "OPTIONAL",
		},
		{
			name:     "empty description",
			doc:      `{"description": ""}`,
			expected: "OPTIONAL",
		},
		{
			name:     "secret first",
			required: true,
			doc:      `{"type": "string", "airbyte_secret": true, "description": "API key"}`,
			expected: SecretComment + " | REQUIRED | string | API key",
		},
		{
			name:     "object example keeps key order",
			doc:      `{"type": "object", "examples": [{"k": "v", "a": 1}]}`,
			expected: `OPTIONAL | object | Example: {"k":"v","a":1}`,
		},
		{
			name:     "list of lists examples",
			doc:      `{"type": "array", "examples": [["p", "q"], ["r"]]}`,
			expected: `OPTIONAL | array | Examples: ["p","q"], ["r"]`,
		},
		{
			name:     "float example keeps decimal point",
			doc:      `{"type": "number", "examples": [1.0]}`,
			expected: "OPTIONAL | number | Example: 1.0",
		},
		{
			name:     "secret false",
			doc:      `{"type": "string", "airbyte_secret": false}`,
			expected: "OPTIONAL | string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField("field", tt.required, mustMetadata(t, tt.doc))
			assert.Equal(t, tt.expected, f.Comment)
			assert.NotContains(t, f.Comment, "\n")
		})
	}
}

func TestNewField_Default(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		doc       string
		expected  any
		expectSet bool
	}{
		{"no default", "host", `{"type": "string"}`, nil, false},
		{"raw default", "port", `{"type": "integer", "default": 5432}`, 5432, true},
		{"null default", "port", `{"default": null}`, nil, false},
		{"secret placeholder", "api_key", `{"airbyte_secret": true, "default": "ignored"}`, "${API_KEY}", true},
		{"secret placeholder keeps characters", "api-key.v2", `{"airbyte_secret": true}`, "${API-KEY.V2}", true},
		{"const wins over secret", "token", `{"airbyte_secret": true, "const": "fixed"}`, "fixed", true},
		{"const wins over default", "mode", `{"const": "standard", "default": "other"}`, "standard", true},
		{"falsy const still wins", "enabled", `{"const": false, "default": true}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField(tt.field, false, mustMetadata(t, tt.doc))
			value, ok := f.Default()
			assert.Equal(t, tt.expectSet, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestNewField_LeafHasNoChildren(t *testing.T) {
	f := NewField("host", true, mustMetadata(t, `{"type": "string", "description": "Hostname"}`))

	assert.Empty(t, f.OneOfValues)
	assert.Empty(t, f.ObjectProperties)
	assert.Empty(t, f.ArrayItems)
	assert.False(t, f.IsObject())
	assert.False(t, f.IsArrayOfObjects())
	assert.Equal(t, "REQUIRED | string | Hostname", f.Comment)
}

func TestNewField_NestedObject(t *testing.T) {
	f := NewField("tunnel", false, mustMetadata(t, `{
		"type": "object",
		"required": ["port"],
		"properties": {
			"host": {"type": "string"},
			"port": {"type": "integer"}
		}
	}`))

	require.Len(t, f.ObjectProperties, 2)
	assert.True(t, f.IsObject())
	assert.Equal(t, "host", f.ObjectProperties[0].Name)
	assert.False(t, f.ObjectProperties[0].Required)
	assert.Equal(t, "port", f.ObjectProperties[1].Name)
	assert.True(t, f.ObjectProperties[1].Required)
}

func TestNewField_ArrayOfObjects(t *testing.T) {
	f := NewField("streams", true, mustMetadata(t, `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"format": {"type": "string", "default": "csv"}
			}
		}
	}`))

	require.True(t, f.IsArrayOfObjects())
	require.Len(t, f.ArrayItems, 2)
	assert.Equal(t, "name", f.ArrayItems[0].Name)
	assert.True(t, f.ArrayItems[0].Required)
	assert.Equal(t, "format", f.ArrayItems[1].Name)
	assert.False(t, f.ArrayItems[1].Required)
}

func TestNewField_ArrayOfScalars(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"string items", `{"type": "array", "items": {"type": "string"}}`},
		{"no items", `{"type": "array"}`},
		{"type list", `{"type": ["array", "null"], "items": {"type": "object", "properties": {"a": {}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField("values", false, mustMetadata(t, tt.doc))
			assert.False(t, f.IsArrayOfObjects())
			assert.Empty(t, f.ArrayItems)
		})
	}
}

func TestNewField_OneOf(t *testing.T) {
	f := NewField("replication_method", true, mustMetadata(t, `{
		"type": "object",
		"oneOf": [
			{
				"title": "Standard",
				"required": ["method"],
				"properties": {"method": {"type": "string", "const": "Standard"}}
			},
			{
				"title": "CDC",
				"required": ["method", "replication_slot"],
				"properties": {
					"method": {"type": "string", "const": "CDC"},
					"replication_slot": {"type": "string"},
					"publication": {"type": "string"}
				}
			},
			{"title": "Empty"}
		]
	}`))

	assert.False(t, f.IsObject())
	require.Len(t, f.OneOfValues, 3)

	require.Len(t, f.OneOfValues[0], 1)
	standard, _ := f.OneOfValues[0][0].Default()
	assert.Equal(t, "Standard", standard)

	require.Len(t, f.OneOfValues[1], 3)
	assert.Equal(t, "replication_slot", f.OneOfValues[1][1].Name)
	assert.True(t, f.OneOfValues[1][1].Required)
	assert.False(t, f.OneOfValues[1][2].Required)

	assert.Empty(t, f.OneOfValues[2])
}

func TestNewField_NilMetadata(t *testing.T) {
	f := NewField("anything", false, nil)

	assert.Equal(t, "OPTIONAL", f.Comment)
	_, ok := f.Default()
	assert.False(t, ok)
}

func TestSecretPlaceholder(t *testing.T) {
	assert.Equal(t, "${PASSWORD}", SecretPlaceholder("password"))
	assert.Equal(t, "${CLIENT_SECRET}", SecretPlaceholder("client_secret"))
}

func TestFormatValue(t *testing.T) {
	nested := mustMetadata(t, `{"z": {"b": [1, "x"]}, "a": null}`)

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string raw", "a <b> & c", "a <b> & c"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"whole float", 3.0, "3.0"},
		{"fraction", 0.25, "0.25"},
		{"exponent", 1e21, "1e+21"},
		{"null", nil, "null"},
		{"list", []any{"p", 2}, `["p",2]`},
		{"mapping in order", nested, `{"z":{"b":[1,"x"]},"a":null}`},
		{"no html escaping", []any{"<a&b>"}, `["<a&b>"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.value))
		})
	}
}
