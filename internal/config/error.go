package config

import (
	"fmt"
	"strings"
)

// ConfigError reports validation failures for a loaded config file.
type ConfigError struct {
	Path   string
	Errors []string
}

func (e *ConfigError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("invalid config %s", e.Path)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid config %s:", e.Path)
	for _, msg := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(msg)
	}
	return b.String()
}
