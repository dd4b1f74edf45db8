package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "change-me", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.InDelta(t, 50.0, cfg.RateLimit.RPS, 0.001)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("APP_JWT_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("APP_DATABASE_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database.driver")
}

func TestValidate(t *testing.T) {
	base := Config{
		Server:   ServerConfig{Port: 8080, Mode: "release"},
		Database: DatabaseConfig{Driver: "postgres", DSN: "host=db"},
		JWT:      JWTConfig{Secret: "s", TTL: time.Hour},
	}
	require.NoError(t, base.validate())

	noSecret := base
	noSecret.JWT.Secret = ""
	assert.ErrorContains(t, noSecret.validate(), "jwt.secret")

	badPort := base
	badPort.Server.Port = 70000
	assert.ErrorContains(t, badPort.validate(), "server.port")

	noDSN := base
	noDSN.Database.DSN = ""
	assert.ErrorContains(t, noDSN.validate(), "database.dsn")
}
