package definition

import (
	"os"

	"github.com/tacogips/octavia/internal/debug"
	"gopkg.in/yaml.v3"
)

// decodeFile decodes a JSON or YAML file into v. JSON is read as YAML so
// that mapping order is preserved in schema.Metadata values.
func decodeFile(path string, v any, what string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newDefinitionError(DefinitionNotFound, what+" not found", path, err)
		}
		return newDefinitionError(DefinitionInvalid, "failed to read "+what, path, err)
	}

	debug.Debug("[definition] Decoding %s: %s (%d bytes)", what, path, len(data))
	if err := yaml.Unmarshal(data, v); err != nil {
		return newDefinitionError(DefinitionInvalid, "invalid "+what, path, err)
	}
	return nil
}
