package qudora

import (
	"fmt"
	"strings"
)

const (
	BackendID = "qudora"

	DefaultMachine = "QVLS-Q1"
	DefaultBaseURL = "https://api.qudora.com/jobs/"

	// CredentialsEnvVar short-circuits file-based credential resolution;
	// its entire value is used verbatim as the API key.
	CredentialsEnvVar = "CUDAQ_QUDORA_CREDENTIALS"

	// DefaultCredentialsFile is looked up under the user home directory.
	DefaultCredentialsFile = ".qudora_config"
)

// Settings keys recognized by FromSettings.
const (
	SettingMachine     = "machine"
	SettingURL         = "url"
	SettingCredentials = "credentials"
)

// Config is the frozen per-backend configuration. It is produced once at
// construction and never mutated afterwards.
type Config struct {
	// Machine is the target machine identifier submissions are routed to.
	Machine string

	// BaseURL is the job-submission endpoint, always normalized to end
	// with a trailing slash.
	BaseURL string

	// CredentialsPath optionally overrides the default credential file.
	CredentialsPath string
}

func DefaultConfig() Config {
	return Config{
		Machine: DefaultMachine,
		BaseURL: DefaultBaseURL,
	}
}

// FromSettings builds a Config from the stringly-typed backend settings
// map, applying defaults for absent keys and rejecting unknown ones.
func FromSettings(settings map[string]string) (Config, error) {
	cfg := DefaultConfig()
	for key, value := range settings {
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case SettingMachine:
			if value != "" {
				cfg.Machine = value
			}
		case SettingURL:
			if value != "" {
				cfg.BaseURL = value
			}
		case SettingCredentials:
			cfg.CredentialsPath = value
		default:
			return Config{}, fmt.Errorf("qudora: unknown backend setting %q", key)
		}
	}
	return cfg.normalized()
}

func (c Config) normalized() (Config, error) {
	c.Machine = strings.TrimSpace(c.Machine)
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.CredentialsPath = strings.TrimSpace(c.CredentialsPath)
	if c.Machine == "" {
		return Config{}, fmt.Errorf("qudora: machine id is required")
	}
	if c.BaseURL == "" {
		return Config{}, fmt.Errorf("qudora: base url is required")
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	return c, nil
}
