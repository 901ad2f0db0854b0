package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbauth/internal/config"
	"fbauth/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "main", cfg.Facebook.ProviderKey)
	assert.True(t, cfg.Facebook.UseUserProvider)
	assert.True(t, cfg.Facebook.CreateIfNotExists)
	assert.True(t, cfg.Facebook.AppsecretProof)
	assert.Equal(t, []string{string(domain.RoleUser)}, cfg.Facebook.DefaultRoles)
	assert.Equal(t, 10*time.Second, cfg.Facebook.Timeout)
	assert.Equal(t, "memory", cfg.Session.Driver)
	assert.Equal(t, "fbauth_sid", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FBAUTH_FACEBOOK_APP_ID", "1234")
	t.Setenv("FBAUTH_FACEBOOK_APP_SECRET", "s3cr3t")
	t.Setenv("FBAUTH_FACEBOOK_PROVIDER_KEY", "secured_area")
	t.Setenv("FBAUTH_FACEBOOK_DEFAULT_ROLES", "ROLE_USER, ROLE_FACEBOOK")
	t.Setenv("FBAUTH_SESSION_DRIVER", "redis")
	t.Setenv("FBAUTH_SESSION_REDIS_ADDR", "redis:6379")
	t.Setenv("FBAUTH_JWT_ACCESS_EXPIRY", "5m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "1234", cfg.Facebook.AppID)
	assert.Equal(t, "s3cr3t", cfg.Facebook.AppSecret)
	assert.Equal(t, "secured_area", cfg.Facebook.ProviderKey)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_FACEBOOK"}, cfg.Facebook.DefaultRoles)
	assert.Equal(t, "redis", cfg.Session.Driver)
	assert.Equal(t, "redis:6379", cfg.Session.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTokenExpiry)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)

	t.Setenv("FBAUTH_SERVER_PORT", ":7000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown session driver", map[string]string{"FBAUTH_SESSION_DRIVER": "memcached"}},
		{"empty provider key", map[string]string{"FBAUTH_FACEBOOK_PROVIDER_KEY": " "}},
		{"creation without user provider", map[string]string{"FBAUTH_FACEBOOK_USE_USER_PROVIDER": "false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := config.Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "fbauth", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/fbauth?sslmode=disable", cfg.DSN())
}
