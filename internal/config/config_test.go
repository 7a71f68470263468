package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 30, cfg.Session.TTLDays)
	assert.Equal(t, "/login", cfg.App.LoginPath)
	assert.False(t, cfg.Production())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
database:
  path: /tmp/x.db
session:
  secret: from-file-from-file-from-file-1234
log:
  level: debug
`), 0o600))

	t.Setenv("SESSION_SECRET", "from-env-from-env-from-env-0123456789")
	t.Setenv("APP_ENV", "production")
	t.Setenv("AIT_SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, "from-env-from-env-from-env-0123456789", cfg.Session.Secret)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Production())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// godotenv never overrides variables that are already set
	os.Unsetenv("SESSION_SECRET")
	t.Cleanup(func() { os.Unsetenv("SESSION_SECRET") })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SESSION_SECRET=dotenv-secret-dotenv-secret-0123456789\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret-dotenv-secret-0123456789", cfg.Session.Secret)
}

func TestLoad_BrokenFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		Session:  SessionConfig{TTLDays: 30},
	}
	assert.NoError(t, valid.Validate())

	pg := valid
	pg.Database = DatabaseConfig{Driver: "postgres"}
	assert.Error(t, pg.Validate())
	pg.Database.DSN = "postgres://localhost/inventory"
	assert.NoError(t, pg.Validate())

	bad := valid
	bad.Database.Driver = "mysql"
	assert.ErrorContains(t, bad.Validate(), "unsupported database driver")

	ttl := valid
	ttl.Session.TTLDays = 0
	assert.Error(t, ttl.Validate())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it switches
// the working directory for the test and restores it during cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
