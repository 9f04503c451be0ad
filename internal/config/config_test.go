package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yml"))
	setSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTP_TTL)
	assert.Equal(t, 60*time.Second, cfg.OTP_ResendWindow)
	assert.Equal(t, "@every 1h", cfg.OTP_PurgeSchedule)
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 9000
  gin_mode: release
jwt:
  access_secret: file-access
  refresh_secret: file-refresh
  access_ttl: 5m
otp:
  ttl: 2m
smtp:
  host: smtp.example.com
  port: 2525
cookie:
  secure: true
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("OTP_TTL", "3m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "file-access", cfg.AccessSecret)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL, "unset keys keep defaults")
	assert.Equal(t, 3*time.Minute, cfg.OTP_TTL)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing access secret", env: map[string]string{"REFRESH_TOKEN_SECRET": "r"}},
		{name: "missing refresh secret", env: map[string]string{"ACCESS_TOKEN_SECRET": "a"}},
		{name: "identical secrets", env: map[string]string{"ACCESS_TOKEN_SECRET": "same", "REFRESH_TOKEN_SECRET": "same"}},
		{name: "bad ttl", env: map[string]string{"ACCESS_TOKEN_SECRET": "a", "REFRESH_TOKEN_SECRET": "r", "ACCESS_TOKEN_TTL": "soon"}},
		{name: "bad port", env: map[string]string{"ACCESS_TOKEN_SECRET": "a", "REFRESH_TOKEN_SECRET": "r", "PORT": "http"}},
		{name: "bad cookie flag", env: map[string]string{"ACCESS_TOKEN_SECRET": "a", "REFRESH_TOKEN_SECRET": "r", "COOKIE_SECURE": "maybe"}},
		{name: "admin without password", env: map[string]string{"ACCESS_TOKEN_SECRET": "a", "REFRESH_TOKEN_SECRET": "r", "ADMIN_EMAIL": "admin@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yml"))
			for _, k := range []string{"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET", "ADMIN_EMAIL", "ADMIN_PASS"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfig(t, "app: [unclosed"))
	setSecrets(t)

	_, err := Load()
	assert.Error(t, err)
}
