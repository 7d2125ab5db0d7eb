package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `server:
  host: "127.0.0.1"
  port: 8080
  env: "test"
database:
  url: "host=localhost dbname=findthem_test"
jwt:
  secret: "test-secret"
policy:
  anonymous_submit: true
  anonymous_comment: false
  status_edit_requires_moderator: true
`

func loadFromYAML(t *testing.T, content string) *Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONFIG_PATH", path)

	AppConfig = nil
	LoadConfig()
	return AppConfig
}

func TestLoadConfigFromYAML(t *testing.T) {
	cfg := loadFromYAML(t, testYAML)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.True(t, cfg.Policy.AnonymousSubmit)
	assert.False(t, cfg.Policy.AnonymousComment)
	assert.True(t, cfg.Policy.StatusEditRequiresModerator)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadFromYAML(t, "database:\n  url: \"host=localhost\"\n")

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.TTLHours)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSize)
	assert.Contains(t, cfg.Upload.AllowedTypes, "image/jpeg")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "host=envhost dbname=findthem")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("SERVER_PORT", "9000")

	AppConfig = nil
	LoadConfig()
	cfg := AppConfig

	assert.Equal(t, "host=envhost dbname=findthem", cfg.Database.DSN)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Policy.AnonymousSubmit)
	assert.True(t, cfg.Policy.AnonymousComment)
	assert.False(t, cfg.Policy.StatusEditRequiresModerator)
}
