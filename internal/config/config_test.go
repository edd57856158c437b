package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "pawcare_sid", cfg.SessionCookieName)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "https://api.pawcare.test/api/")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DATABASE_URL", "postgres://pawcare@localhost:5432/pawcare")

	v := viper.New()
	v.AutomaticEnv()
	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.pawcare.test/api", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "postgres://pawcare@localhost:5432/pawcare", cfg.DatabaseURL)
}

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		return Config{
			Port:              "8080",
			APIBaseURL:        "http://localhost:8000/api",
			SessionTTL:        time.Hour,
			SessionCookieName: "sid",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"relative api url", func(c *Config) { c.APIBaseURL = "/api" }, true},
		{"empty api url", func(c *Config) { c.APIBaseURL = "" }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"negative timeout", func(c *Config) { c.BackendTimeout = -time.Second }, true},
		{"empty cookie name", func(c *Config) { c.SessionCookieName = " " }, true},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, true},
		{"long secret", func(c *Config) { c.SessionSecret = strings.Repeat("k", 32) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
