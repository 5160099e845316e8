package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("S3_USE_SSL", "true")
	os.Setenv("JWT_EXPIRES_IN_SEC", "7200")
	os.Setenv("MAX_FILE_SIZE_BYTES", "1048576")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("S3_USE_SSL")
		os.Unsetenv("JWT_EXPIRES_IN_SEC")
		os.Unsetenv("MAX_FILE_SIZE_BYTES")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, 7200, cfg.JWT.ExpiresInSec)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxFileSize)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("PRESIGN_EXPIRY_SEC")
	os.Unsetenv("MAX_FILE_SIZE_BYTES")
	os.Unsetenv("ALLOWED_MIME_TYPES")

	cfg := Load()

	assert.Equal(t, 60, cfg.S3.PresignExpirySec)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxFileSize)
	assert.Contains(t, cfg.Upload.AllowedMimeTypes, "application/pdf")
	assert.Contains(t, cfg.Upload.AllowedMimeTypes, "image/png")
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

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"

	os.Setenv(key, "image/png, application/pdf ,text/plain")
	assert.Equal(t, []string{"image/png", "application/pdf", "text/plain"}, getEnvList(key, nil))

	os.Setenv(key, " , ")
	assert.Equal(t, []string{"fallback"}, getEnvList(key, []string{"fallback"}))

	os.Unsetenv(key)
	assert.Equal(t, []string{"fallback"}, getEnvList(key, []string{"fallback"}))
}
