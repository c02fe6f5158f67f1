// Package schema turns connector specification schemas into trees of
// renderable fields.
package schema

import "strings"

// SecretComment is the first comment clause of fields marked airbyte_secret.
const SecretComment = "SECRET (please store in environment variables)"

const commentSeparator = " | "

// Schema keywords consulted while flattening.
const (
	keywordType        = "type"
	keywordDescription = "description"
	keywordExamples    = "examples"
	keywordDefault     = "default"
	keywordConst       = "const"
	keywordSecret      = "airbyte_secret"
	keywordItems       = "items"
	keywordOneOf       = "oneOf"
	keywordProperties  = "properties"
	keywordRequired    = "required"
)

// Field is one schema property rendered as a commented configuration line.
// A Field is built once from its metadata and never mutated afterwards.
type Field struct {
	// Name is the property key.
	Name string
	// Required reports whether the parent schema lists Name as required.
	Required bool
	// Metadata is the property's raw schema fragment.
	Metadata *Metadata
	// OneOfValues holds one flattened branch per oneOf alternative.
	OneOfValues [][]*Field
	// ObjectProperties holds the flattened nested properties.
	ObjectProperties []*Field
	// ArrayItems holds the flattened item properties of an array of objects.
	ArrayItems []*Field
	// Comment is the explanatory text rendered next to the field.
	Comment string

	defaultValue any
	hasDefault   bool
}

// NewField builds a Field and its subtree from the property's metadata.
func NewField(name string, required bool, metadata *Metadata) *Field {
	if metadata == nil {
		metadata = NewMetadata()
	}
	f := &Field{
		Name:     name,
		Required: required,
		Metadata: metadata,
	}
	f.OneOfValues = f.oneOfValues()
	f.ObjectProperties = ObjectFields(metadata)
	f.ArrayItems = f.arrayItems()
	f.Comment = buildComment(
		f.secretComment,
		f.requiredComment,
		f.typeComment,
		f.descriptionComment,
		f.exampleComment,
	)
	f.defaultValue, f.hasDefault = f.resolveDefault()
	return f
}

// Type returns the raw type keyword, either a string or a list.
func (f *Field) Type() (any, bool) {
	return f.Metadata.Get(keywordType)
}

// TypeLabel returns the type keyword when it is a single string.
func (f *Field) TypeLabel() (string, bool) {
	return f.Metadata.String(keywordType)
}

// IsType reports whether the type keyword is exactly typ.
func (f *Field) IsType(typ string) bool {
	label, ok := f.TypeLabel()
	return ok && label == typ
}

// Description returns the description keyword.
func (f *Field) Description() (string, bool) {
	return f.Metadata.String(keywordDescription)
}

// Examples returns the examples keyword, a list or a scalar.
func (f *Field) Examples() (any, bool) {
	return f.Metadata.Get(keywordExamples)
}

// DefaultKeyword returns the raw default keyword.
func (f *Field) DefaultKeyword() (any, bool) {
	return f.Metadata.Get(keywordDefault)
}

// Const returns the const keyword.
func (f *Field) Const() (any, bool) {
	return f.Metadata.Get(keywordConst)
}

// IsSecret reports whether the field carries the secret marker.
func (f *Field) IsSecret() bool {
	return f.Metadata.Bool(keywordSecret)
}

// Items returns the items sub-schema.
func (f *Field) Items() (*Metadata, bool) {
	return f.Metadata.Mapping(keywordItems)
}

// OneOf returns the oneOf alternatives.
func (f *Field) OneOf() ([]any, bool) {
	return f.Metadata.List(keywordOneOf)
}

// HasOneOf reports whether the field has a non-empty oneOf list.
func (f *Field) HasOneOf() bool {
	alternatives, ok := f.OneOf()
	return ok && len(alternatives) > 0
}

// IsObject reports whether the field is a plain object (no oneOf).
func (f *Field) IsObject() bool {
	return f.IsType("object") && !f.HasOneOf()
}

// IsArrayOfObjects reports whether the field is an array whose items are objects.
func (f *Field) IsArrayOfObjects() bool {
	if !f.IsType("array") {
		return false
	}
	items, ok := f.Items()
	if !ok {
		return false
	}
	itemType, ok := items.String(keywordType)
	return ok && itemType == "object"
}

// Default returns the value written for the field: const first, then the
// environment placeholder for secrets, then the default keyword.
func (f *Field) Default() (any, bool) {
	return f.defaultValue, f.hasDefault
}

// SecretPlaceholder returns the environment variable reference for name.
func SecretPlaceholder(name string) string {
	return "${" + strings.ToUpper(name) + "}"
}

func (f *Field) resolveDefault() (any, bool) {
	if v, ok := f.Const(); ok {
		return v, true
	}
	if f.IsSecret() {
		return SecretPlaceholder(f.Name), true
	}
	return f.DefaultKeyword()
}

func (f *Field) oneOfValues() [][]*Field {
	alternatives, ok := f.OneOf()
	if !ok || len(alternatives) == 0 {
		return nil
	}
	values := make([][]*Field, 0, len(alternatives))
	for _, alternative := range alternatives {
		m, _ := alternative.(*Metadata)
		values = append(values, ObjectFields(m))
	}
	return values
}

func (f *Field) arrayItems() []*Field {
	if !f.IsArrayOfObjects() {
		return nil
	}
	items, _ := f.Items()
	properties, _ := items.Mapping(keywordProperties)
	return ParseFields(RequiredNames(items), properties)
}

func (f *Field) secretComment() (string, bool) {
	if f.IsSecret() {
		return SecretComment, true
	}
	return "", false
}

func (f *Field) requiredComment() (string, bool) {
	if f.Required {
		return "REQUIRED", true
	}
	return "OPTIONAL", true
}

func (f *Field) typeComment() (string, bool) {
	typ, ok := f.Type()
	if !ok {
		return "", false
	}
	if types, ok := typ.([]any); ok {
		return joinValues(types), true
	}
	label := FormatValue(typ)
	return label, label != ""
}

func (f *Field) descriptionComment() (string, bool) {
	description, ok := f.Description()
	return description, ok && description != ""
}

func (f *Field) exampleComment() (string, bool) {
	examples, ok := f.Examples()
	if !ok {
		return "", false
	}
	if list, ok := examples.([]any); ok {
		switch len(list) {
		case 0:
			return "", false
		case 1:
			return "Example: " + FormatValue(list[0]), true
		default:
			return "Examples: " + joinValues(list), true
		}
	}
	if s, ok := examples.(string); ok && s == "" {
		return "", false
	}
	return "Example: " + FormatValue(examples), true
}

func buildComment(clauses ...func() (string, bool)) string {
	parts := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		if text, ok := clause(); ok {
			parts = append(parts, text)
		}
	}
	return strings.ReplaceAll(strings.Join(parts, commentSeparator), "\n", "")
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatValue(v)
	}
	return strings.Join(parts, ", ")
}
