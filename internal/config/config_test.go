package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origPath := os.Getenv("DATA_FILE")
	defer os.Setenv("DATA_FILE", origPath)

	os.Setenv("DATA_FILE", "/var/lib/studenthub/data.json")
	os.Setenv("BODY_LIMIT_MB", "50")
	os.Setenv("STORAGE_BACKEND", "minio")
	os.Setenv("MINIO_USE_SSL", "true")
	defer func() {
		os.Unsetenv("BODY_LIMIT_MB")
		os.Unsetenv("STORAGE_BACKEND")
		os.Unsetenv("MINIO_USE_SSL")
	}()

	cfg := Load()

	assert.Equal(t, "/var/lib/studenthub/data.json", cfg.Data.Path)
	assert.Equal(t, 50, cfg.BodyLimitMB)
	assert.Equal(t, BackendMinIO, cfg.StorageBackend)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_FILE", "UPLOAD_DIR", "UPLOAD_PUBLIC_BASE", "STORAGE_BACKEND"} {
		orig := os.Getenv(key)
		os.Unsetenv(key)
		defer os.Setenv(key, orig)
	}

	cfg := Load()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "data.json", cfg.Data.Path)
	assert.Equal(t, "pdfs", cfg.Uploads.Dir)
	assert.Equal(t, "/pdfs", cfg.Uploads.PublicBase)
	assert.Equal(t, BackendLocal, cfg.StorageBackend)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
