package credentials

import (
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/quantabridge/go-qpu/core"
)

const testEnvVar = "QPU_TEST_CREDENTIALS"

func writeConfig(t *testing.T, dir string, name string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func newTestResolver(home string) *Resolver {
	resolver := NewResolver(testEnvVar, ".qpu_test_config")
	resolver.HomeDir = func() (string, error) { return home, nil }
	return resolver
}

func TestResolveEnvOverrideWinsOverFiles(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, ".qpu_test_config", "key : FROMDEFAULT\nrefresh : R1\n")
	explicit := writeConfig(t, home, "explicit.cfg", "key : FROMEXPLICIT\nrefresh : R2\n")
	t.Setenv(testEnvVar, "FROMENV")

	resolution, err := newTestResolver(home).Resolve(explicit)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.Source != SourceEnvironment {
		t.Fatalf("expected environment source, got %q", resolution.Source)
	}
	if resolution.Credentials.APIKey != "FROMENV" {
		t.Fatalf("expected env api key, got %q", resolution.Credentials.APIKey)
	}
	if resolution.Credentials.RefreshKey != "" {
		t.Fatalf("env override must not carry a refresh key, got %q", resolution.Credentials.RefreshKey)
	}
}

func TestResolveExplicitPathBeatsDefaultFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, ".qpu_test_config", "key : FROMDEFAULT\nrefresh : R1\n")
	explicit := writeConfig(t, home, "explicit.cfg", "key : FROMEXPLICIT\nrefresh : R2\n")

	resolution, err := newTestResolver(home).Resolve(explicit)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.Source != SourceExplicit {
		t.Fatalf("expected explicit source, got %q", resolution.Source)
	}
	if resolution.Credentials.APIKey != "FROMEXPLICIT" {
		t.Fatalf("expected explicit api key, got %q", resolution.Credentials.APIKey)
	}
	if resolution.Path != explicit {
		t.Fatalf("expected path %q, got %q", explicit, resolution.Path)
	}
}

func TestResolveDefaultFileRoundTrip(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, ".qpu_test_config", "key : ABC123\nrefresh : XYZ789\ntime : 2024-01-01T00:00:00Z\n")

	resolution, err := newTestResolver(home).Resolve("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolution.Source != SourceDefault {
		t.Fatalf("expected default source, got %q", resolution.Source)
	}
	creds := resolution.Credentials
	if creds.APIKey != "ABC123" {
		t.Fatalf("expected api key ABC123, got %q", creds.APIKey)
	}
	if creds.RefreshKey != "XYZ789" {
		t.Fatalf("expected refresh key XYZ789, got %q", creds.RefreshKey)
	}
	if creds.IssuedAt != "2024-01-01T00:00:00Z" {
		t.Fatalf("expected issued-at to be kept, got %q", creds.IssuedAt)
	}
}

func TestResolveMissingDefaultFileFails(t *testing.T) {
	home := t.TempDir()
	_, err := newTestResolver(home).Resolve("")
	if err == nil {
		t.Fatalf("expected missing default file to fail")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.TextCode != core.BackendErrorCredentialsInvalid {
		t.Fatalf("expected credentials text code, got %q", rich.TextCode)
	}
}

func TestResolveUnknownKeyFails(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "bad.cfg", "key : A\nfoo : bar\nrefresh : R\n")

	_, err := newTestResolver(home).Resolve(path)
	if err == nil {
		t.Fatalf("expected unknown key to fail")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.TextCode != core.BackendErrorConfigInvalid {
		t.Fatalf("expected config text code, got %q", rich.TextCode)
	}
	if rich.Metadata["key"] != "foo" {
		t.Fatalf("expected offending key in metadata, got %v", rich.Metadata["key"])
	}
}

func TestResolveIllFormedLinesFail(t *testing.T) {
	home := t.TempDir()
	for name, contents := range map[string]string{
		"nocolon.cfg":  "keyvalue\n",
		"twocolon.cfg": "key : a : b\n",
	} {
		path := writeConfig(t, home, name, contents)
		if _, err := newTestResolver(home).Resolve(path); err == nil {
			t.Fatalf("%s: expected ill-formed line to fail", name)
		}
	}
}

func TestResolveEmptyFieldsRejected(t *testing.T) {
	home := t.TempDir()

	path := writeConfig(t, home, "emptykey.cfg", "key : \nrefresh : R\n")
	if _, err := newTestResolver(home).Resolve(path); err == nil {
		t.Fatalf("expected empty api key to fail")
	}

	path = writeConfig(t, home, "emptyrefresh.cfg", "key : K\nrefresh : \n")
	if _, err := newTestResolver(home).Resolve(path); err == nil {
		t.Fatalf("expected empty refresh key to fail")
	}
}

func TestResolveIsIdempotentAcrossCalls(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "stable.cfg", "key : SAME\nrefresh : R\n")

	resolver := newTestResolver(home)
	first, err := resolver.Resolve(path)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := resolver.Resolve(path)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first.Credentials != second.Credentials {
		t.Fatalf("expected identical credentials, got %+v then %+v", first.Credentials, second.Credentials)
	}
}

func TestResolveRereadsSourceEachCall(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "rotating.cfg", "key : OLD\nrefresh : R\n")

	resolver := newTestResolver(home)
	if _, err := resolver.Resolve(path); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	writeConfig(t, home, "rotating.cfg", "key : NEW\nrefresh : R\n")
	resolution, err := resolver.Resolve(path)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if resolution.Credentials.APIKey != "NEW" {
		t.Fatalf("expected fresh read to observe rotation, got %q", resolution.Credentials.APIKey)
	}
}
