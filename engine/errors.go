package engine

import "fmt"

// ConfigError reports a semantically invalid configuration. LoadConfig
// returns it without touching the active configuration, so the previously
// loaded behavior stays fully in effect.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
