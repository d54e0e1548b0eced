package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "PORT", "TEMPORAL_HOST_PORT", "TASK_QUEUE", "DATABASE_KIND", "DATABASE_URL", "LOG_FORMAT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Arrange
	clearEnv(t)

	// Act
	cfg, err := Load()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost:7233", cfg.TemporalHostPort)
	assert.Equal(t, "development-checkout", cfg.TaskQueue)
	assert.Equal(t, DatabaseKindMemory, cfg.DatabaseKind)
}

func TestLoad_TaskQueueFollowsAppEnv(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("APP_ENV", "staging")

	// Act
	cfg, err := Load()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "staging-checkout", cfg.TaskQueue)
}

func TestLoad_SqlKindRequiresUrl(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("DATABASE_KIND", DatabaseKindSql)

	// Act
	cfg, err := Load()

	// Assert
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestLoad_SqlKindWithUrl(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("DATABASE_KIND", DatabaseKindSql)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/checkout")

	// Act
	cfg, err := Load()

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, DatabaseKindSql, cfg.DatabaseKind)
	assert.Equal(t, "postgres://localhost:5432/checkout", cfg.DatabaseURL)
}

func TestLoad_UnknownKindRejected(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("DATABASE_KIND", "mongo")

	// Act
	cfg, err := Load()

	// Assert
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestHTTPAddr(t *testing.T) {
	assert.Equal(t, ":8080", (&Config{Port: "8080"}).HTTPAddr())
	assert.Equal(t, ":9090", (&Config{Port: ":9090"}).HTTPAddr())
	assert.Equal(t, ":8080", (&Config{Port: " "}).HTTPAddr())
}
