package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"strings"
	"sync"
	"text/template"

	"github.com/tacogips/octavia/internal/schema"
)

// Template names. A custom template directory must provide both.
const (
	ConnectorTemplate  = "source_or_destination.yaml.tmpl"
	ConnectionTemplate = "connection.yaml.tmpl"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Engine holds parsed templates. It is read-only after construction and
// can be shared by any number of render calls.
type Engine struct {
	tmpl *template.Template
}

// NewEngine parses both configuration templates from fsys.
func NewEngine(fsys fs.FS) (*Engine, error) {
	tmpl, err := template.New("").Funcs(funcMap()).ParseFS(fsys, ConnectorTemplate, ConnectionTemplate)
	if err != nil {
		return nil, newRenderError(RenderTemplateFailed, "failed to parse templates", "", err)
	}
	return &Engine{tmpl: tmpl}, nil
}

var defaultEngine = sync.OnceValues(func() (*Engine, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	return NewEngine(sub)
})

// DefaultEngine returns the engine over the embedded templates.
func DefaultEngine() (*Engine, error) {
	return defaultEngine()
}

// Execute renders the named template with data.
func (e *Engine) Execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, newRenderError(RenderTemplateFailed, "failed to execute template", name, err)
	}
	return buf.Bytes(), nil
}

// fieldBlock is a run of sibling fields at one indentation depth.
type fieldBlock struct {
	Fields    []*schema.Field
	Depth     int
	Commented bool
	// ListItem marks the fields of one array item: the first line carries
	// the "- " marker.
	ListItem bool
}

// oneOfBlock holds the alternatives of a oneOf field.
type oneOfBlock struct {
	Name     string
	Branches [][]*schema.Field
	Block    fieldBlock
}

const indentUnit = "  "

func funcMap() template.FuncMap {
	return template.FuncMap{
		"json":         toJSON,
		"indent":       indent,
		"defaultValue": defaultValue,
		"rootBlock": func(fields []*schema.Field, commented bool) fieldBlock {
			return fieldBlock{Fields: fields, Depth: 1, Commented: commented}
		},
		"childBlock": func(parent fieldBlock, fields []*schema.Field) fieldBlock {
			return fieldBlock{Fields: fields, Depth: parent.Depth + 1, Commented: parent.Commented}
		},
		"itemBlock": func(parent fieldBlock, fields []*schema.Field) fieldBlock {
			return fieldBlock{Fields: fields, Depth: parent.Depth + 2, Commented: parent.Commented, ListItem: true}
		},
		"oneOfBlock": func(parent fieldBlock, f *schema.Field) oneOfBlock {
			return oneOfBlock{
				Name:     f.Name,
				Branches: f.OneOfValues,
				Block:    fieldBlock{Depth: parent.Depth + 1, Commented: parent.Commented},
			}
		},
		"branchBlock": func(block fieldBlock, fields []*schema.Field, commented bool) fieldBlock {
			return fieldBlock{Fields: fields, Depth: block.Depth, Commented: block.Commented || commented}
		},
		"linePrefix": linePrefix,
		"pad": func(depth int) string {
			return strings.Repeat(indentUnit, depth)
		},
	}
}

// linePrefix returns the indentation, comment marker and list marker for
// the i-th field of block. Removing the "# " of a commented line always
// leaves valid YAML.
func linePrefix(block fieldBlock, i int) string {
	if block.ListItem && i == 0 {
		prefix := strings.Repeat(indentUnit, block.Depth-1)
		if block.Commented {
			prefix += "# "
		}
		return prefix + "- "
	}
	prefix := strings.Repeat(indentUnit, block.Depth)
	if block.Commented {
		prefix += "# "
	}
	return prefix
}

// defaultValue formats a field's default for a YAML line. The ${NAME}
// placeholder of a secret is written raw, everything else (a const included)
// as JSON, which YAML reads back unchanged.
func defaultValue(f *schema.Field) (string, error) {
	v, ok := f.Default()
	if !ok {
		return "", nil
	}
	if _, hasConst := f.Const(); f.IsSecret() && !hasConst {
		return schema.SecretPlaceholder(f.Name), nil
	}
	return toJSON(v)
}

func toJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// indent prefixes every line but the first with n spaces. Blank lines and
// the trailing newline are left alone.
func indent(n int, s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	pad := strings.Repeat(" ", n)
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
