package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
database:
  host: localhost
  name: tayttopaikka
  username: tayttopaikka
  password: secret
email:
  smtpHost: smtp.example.com
`

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeTestConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.TechnicalParameters.ListenAddress)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 587, cfg.Email.SmtpPort)
	assert.Equal(t, "gdpr@tayttopaikka.fi", cfg.Email.AdminEmail)
	assert.True(t, cfg.Cleanup.UserCleanup.Enabled)
	assert.Equal(t, "0 2 1 * *", cfg.Cleanup.UserCleanup.Schedule)
	assert.Equal(t, "Europe/Helsinki", cfg.Cleanup.UserCleanup.Timezone)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeTestConfig(t, minimalConfig+`
cleanup:
  userCleanup:
    enabled: false
    schedule: "30 3 2 * *"
technicalParameters:
  listenAddress: ":9090"
`))
	require.NoError(t, err)

	assert.False(t, cfg.Cleanup.UserCleanup.Enabled)
	assert.Equal(t, "30 3 2 * *", cfg.Cleanup.UserCleanup.Schedule)
	assert.Equal(t, ":9090", cfg.TechnicalParameters.ListenAddress)
}

func TestLoadConfigRejectsMissingDatabase(t *testing.T) {
	_, err := LoadConfig(writeTestConfig(t, `
email:
  smtpHost: smtp.example.com
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	require.Error(t, err)
}
