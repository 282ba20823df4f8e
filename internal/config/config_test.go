package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "career_predictor", cfg.Database.Name)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOGGER_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Contains(t, cfg.Database.DSN(), "db.internal")
	assert.Contains(t, cfg.Database.DSN(), "secret")
}

func TestDSNFormat(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "app", Password: "pw",
		Name: "career_predictor", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@localhost:5432/career_predictor?sslmode=disable", d.DSN())
}
