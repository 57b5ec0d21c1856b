package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.Equal(t, int64(5242880), cfg.Storage.PartSize)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("STORAGE_ENDPOINT", "https://s3.example.com")
	t.Setenv("STORAGE_ACCESS_KEY", "key")
	t.Setenv("STORAGE_SECRET_KEY", "secret")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("STORAGE_PART_SIZE", "10485760")
	t.Setenv("SERVER_API_KEY", "token")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "https://s3.example.com", cfg.Storage.Endpoint)
	assert.Equal(t, "key", cfg.Storage.AccessKey)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, int64(10485760), cfg.Storage.PartSize)
	assert.Equal(t, "token", cfg.Server.ApiKey)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "STORAGE_BUCKET=photos\nLOG_FORMAT=console\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STORAGE_BUCKET")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "photos", cfg.Storage.Bucket)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"UnknownDriver", "STORAGE_DRIVER", "gcs", "Storage.Driver"},
		{"UnknownLogLevel", "LOG_LEVEL", "verbose", "Log.Level"},
		{"UnknownLogFormat", "LOG_FORMAT", "xml", "Log.Format"},
		{"AccessKeyWithoutSecret", "STORAGE_ACCESS_KEY", "key", "Storage.SecretKey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig(t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateEmptyConfig(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Storage.Endpoint failed \"required\"")
}
