package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	App    App    `mapstructure:"app"`
	Logger Logger `mapstructure:"logger"`
	API    API    `mapstructure:"api"`
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "app:\n  name: sentiment\nlogger:\n  level: debug\napi:\n  port: 9000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var cfg testConfig
	require.NoError(t, Load(path, &cfg, map[string]interface{}{"logger.encoding": "json"}))

	assert.Equal(t, "sentiment", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
	assert.Equal(t, 9000, cfg.API.Port)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "8181")

	var cfg testConfig
	require.NoError(t, Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg, map[string]interface{}{"api.port": 8080}))

	assert.Equal(t, 8181, cfg.API.Port)
}

func TestDatabaseDSN(t *testing.T) {
	db := Database{User: "u", Password: "p", Host: "localhost", Port: 5432, DBName: "news", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@localhost:5432/news?sslmode=disable", db.DSN())
}
