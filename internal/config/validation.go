package config

import (
	"fmt"
	"regexp"
	"strings"
)

var resourceNamePattern = regexp.MustCompile(`^[^/\\]+$`)

// Validate validates the project configuration.
func Validate(config *Config) error {
	return NewLoader().Validate(config)
}

// ValidateResourceName checks that name can be used as a resource directory
// under the project root.
func ValidateResourceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "resource_name", "resource name cannot be empty")
	}
	if name == "." || name == ".." || !resourceNamePattern.MatchString(name) {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "resource_name",
			fmt.Sprintf("resource name %q must not contain path separators", name))
	}
	return nil
}
