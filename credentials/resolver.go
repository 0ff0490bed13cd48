package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source identifies which precedence rung produced the credentials.
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceExplicit    Source = "explicit_file"
	SourceDefault     Source = "default_file"
)

// Credentials is a validated API credential set. IssuedAt is the optional
// vendor-reported issuance timestamp, kept verbatim.
type Credentials struct {
	APIKey     string
	RefreshKey string
	IssuedAt   string
}

// Resolution reports the credentials plus the source path they came from,
// so error messages and logs can name the file a user needs to fix.
type Resolution struct {
	Credentials Credentials
	Source      Source
	Path        string
}

// Resolver resolves credentials with first-match-wins precedence:
// environment override, then an explicit path, then the default per-user
// config file. It never caches; every Resolve call re-reads the source.
type Resolver struct {
	// EnvVar names the environment override. When set, its entire value is
	// the API key and no file is consulted.
	EnvVar string

	// DefaultFileName is the file looked up under the user home directory
	// when no explicit path is given.
	DefaultFileName string

	// HomeDir overrides home-directory discovery, mostly for tests.
	HomeDir func() (string, error)
}

// NewResolver builds a resolver for one vendor's env var and default file.
func NewResolver(envVar string, defaultFileName string) *Resolver {
	return &Resolver{
		EnvVar:          strings.TrimSpace(envVar),
		DefaultFileName: strings.TrimSpace(defaultFileName),
	}
}

// Resolve locates and validates credentials. explicitPath is the
// caller-specified config path and may be empty.
func (r *Resolver) Resolve(explicitPath string) (Resolution, error) {
	if r == nil {
		return Resolution{}, credentialError("credentials: resolver is nil", nil)
	}

	if r.EnvVar != "" {
		if value, ok := os.LookupEnv(r.EnvVar); ok {
			key := strings.TrimSpace(value)
			if key == "" {
				return Resolution{}, credentialError(
					fmt.Sprintf("credentials: environment variable %s is set but empty", r.EnvVar),
					map[string]any{"env_var": r.EnvVar},
				)
			}
			return Resolution{
				Credentials: Credentials{APIKey: key},
				Source:      SourceEnvironment,
				Path:        r.EnvVar,
			}, nil
		}
	}

	if path := strings.TrimSpace(explicitPath); path != "" {
		creds, err := parseConfigFile(path)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Credentials: creds, Source: SourceExplicit, Path: path}, nil
	}

	home, err := r.homeDir()
	if err != nil {
		return Resolution{}, wrapReadError(err, "credentials: resolve home directory", nil)
	}
	path := filepath.Join(home, r.DefaultFileName)
	if _, err := os.Stat(path); err != nil {
		return Resolution{}, credentialError(
			fmt.Sprintf("credentials: cannot find config file with credentials (%s)", path),
			map[string]any{"path": path},
		)
	}
	creds, err := parseConfigFile(path)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Credentials: creds, Source: SourceDefault, Path: path}, nil
}

func (r *Resolver) homeDir() (string, error) {
	if r.HomeDir != nil {
		return r.HomeDir()
	}
	return os.UserHomeDir()
}

// parseConfigFile reads a line-oriented `<key> : <value>` file. Recognized
// keys are `key`, `refresh`, and the optional `time`.
func parseConfigFile(path string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, wrapReadError(err, fmt.Sprintf("credentials: read config file (%s)", path), map[string]any{"path": path})
	}

	var creds Credentials
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			return Credentials{}, parseError(
				fmt.Sprintf("credentials: ill-formed configuration file (%s); key-value pairs must be in `<key> : <value>` format, one per line", path),
				map[string]any{"path": path, "line": strings.TrimSpace(line)},
			)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		switch key {
		case "key":
			creds.APIKey = value
		case "refresh":
			creds.RefreshKey = value
		case "time":
			creds.IssuedAt = value
		default:
			return Credentials{}, parseError(
				fmt.Sprintf("credentials: unknown key %q in configuration file (%s)", key, path),
				map[string]any{"path": path, "key": key},
			)
		}
	}

	if creds.APIKey == "" {
		return Credentials{}, credentialError(
			fmt.Sprintf("credentials: empty API key in configuration file (%s)", path),
			map[string]any{"path": path, "key": "key"},
		)
	}
	if creds.RefreshKey == "" {
		return Credentials{}, credentialError(
			fmt.Sprintf("credentials: empty refresh key in configuration file (%s)", path),
			map[string]any{"path": path, "key": "refresh"},
		)
	}
	// The `time` key is optional.
	return creds, nil
}
