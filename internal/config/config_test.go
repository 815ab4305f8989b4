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

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage_path: storage/storage.db
http_server:
  address: localhost:8082
  allowed_origins: ["http://localhost:3000"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "storage/storage.db", cfg.StoragePath)
	assert.Equal(t, "localhost:8082", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage_path: storage/storage.db
http_server:
  address: localhost:8082
`)

	t.Setenv("ENV", "prod")
	t.Setenv("STORAGE_DRIVER", DriverPostgres)
	t.Setenv("DB_USER", "students")
	t.Setenv("DB_NAME", "studentdb")
	t.Setenv("HTTP_SERVER_WRITE_TIMEOUT", "3s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
	assert.Equal(t,
		"host=localhost port=5432 user=students password= dbname=studentdb sslmode=disable",
		cfg.Postgres.DSN())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing env", "storage_path: a.db\nhttp_server:\n  address: :8082\n"},
		{"missing address", "env: dev\nstorage_path: a.db\n"},
		{"sqlite without path", "env: dev\nhttp_server:\n  address: :8082\n"},
		{"postgres without dbname", "env: dev\nstorage_driver: postgres\nhttp_server:\n  address: :8082\n"},
		{"unknown driver", "env: dev\nstorage_driver: oracle\nstorage_path: a.db\nhttp_server:\n  address: :8082\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
