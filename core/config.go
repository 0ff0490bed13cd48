package core

import (
	"fmt"
	"strings"
)

// Config is the library-level configuration: which backend submissions
// default to and the settings map handed to that backend at construction.
// Backend settings stay stringly-typed on purpose; each vendor adapter
// validates and freezes them into its own typed config.
type Config struct {
	ServiceName    string            `koanf:"service_name" mapstructure:"service_name"`
	DefaultBackend string            `koanf:"default_backend" mapstructure:"default_backend"`
	Settings       map[string]string `koanf:"settings" mapstructure:"settings"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "qpu",
		Settings:    map[string]string{},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	return nil
}

// Setting returns a trimmed settings value and whether it was present.
func (c Config) Setting(key string) (string, bool) {
	value, ok := c.Settings[key]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}
