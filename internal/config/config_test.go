package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every ACCESSKEEPER_ env var that Load() reads.
var allConfigKeys = []string{
	"ACCESSKEEPER_WORK_DIR",
	"ACCESSKEEPER_EXTENSION",
	"ACCESSKEEPER_USE_KEYRING",
	"ACCESSKEEPER_PASSPHRASE",
}

// isolateConfigEnv saves and unsets all ACCESSKEEPER_ env vars so tests
// don't inherit values from the host environment. t.Cleanup restores
// original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	missing := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(missing)

	require.NoError(t, err)
	assert.Equal(t, DefaultExtension, cfg.Extension)
	assert.False(t, cfg.UseKeyring)
	wd, _ := os.Getwd()
	assert.Equal(t, wd, cfg.WorkDir)
}

func TestLoad_FromFile(t *testing.T) {
	isolateConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"work_dir": "/vault", "extension": "enc", "use_keyring": true}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/vault", cfg.WorkDir)
	assert.Equal(t, "enc", cfg.Extension)
	assert.True(t, cfg.UseKeyring)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"extension": "enc"}`), 0600))
	t.Setenv("ACCESSKEEPER_EXTENSION", "aes")
	t.Setenv("ACCESSKEEPER_PASSPHRASE", "from-env")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "aes", cfg.Extension)
	assert.Equal(t, "from-env", cfg.Passphrase)
}

func TestLoad_MalformedFile(t *testing.T) {
	isolateConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	isolateConfigEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := &Config{WorkDir: "/vault", Extension: "gpg", UseKeyring: true, Passphrase: "secret"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/vault", loaded.WorkDir)
	assert.Equal(t, "gpg", loaded.Extension)
	assert.True(t, loaded.UseKeyring)

	// The passphrase must never be written to disk
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Empty(t, loaded.Passphrase)
}
