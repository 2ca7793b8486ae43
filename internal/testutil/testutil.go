// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// IsolateAWS points the AWS SDK at empty shared config files in a temporary
// directory, installs static credentials and clears region, profile and
// endpoint variables. Tests using it cannot run in parallel.
func IsolateAWS(t testing.TB) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_SESSION_TOKEN", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ENDPOINT_URL", "")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
}

// SetHomeDir points the home and configuration directories of the current
// platform at dir.
//
// Platform handling:
//   - Windows: Sets USERPROFILE and APPDATA
//   - Linux/macOS: Sets HOME and XDG_CONFIG_HOME
func SetHomeDir(t testing.TB, dir string) {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Setenv("USERPROFILE", dir)
		t.Setenv("APPDATA", filepath.Join(dir, "AppData", "Roaming"))
	default:
		t.Setenv("HOME", dir)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	}
}

// ClearEnvPrefix unsets every variable starting with prefix for the duration
// of the test.
func ClearEnvPrefix(t testing.TB, prefix string) {
	t.Helper()

	for _, kv := range os.Environ() {
		for i := range len(kv) {
			if kv[i] != '=' {
				continue
			}
			if key := kv[:i]; len(key) >= len(prefix) && key[:len(prefix)] == prefix {
				t.Setenv(key, "")
				if err := os.Unsetenv(key); err != nil {
					t.Fatalf("failed to unset env %s: %v", key, err)
				}
			}
			break
		}
	}
}

// MustWriteFile writes content to name inside dir and returns the path.
// The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
