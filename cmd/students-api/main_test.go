package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage/gormdb"
	"github.com/aanand-mishra/students-api/internal/storage/sqlite"
)

func TestOpenStorage(t *testing.T) {
	tests := []struct {
		driver string
		want   any
	}{
		{config.DriverSQLite, &sqlite.SQLite{}},
		{config.DriverGormSQLite, &gormdb.Gorm{}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			store, err := openStorage(&config.Config{
				Env:           "test",
				StorageDriver: tt.driver,
				StoragePath:   filepath.Join(t.TempDir(), "students.db"),
			})
			require.NoError(t, err)
			defer store.Close()

			assert.IsType(t, tt.want, store)

			students, err := store.GetStudents(context.Background())
			require.NoError(t, err)
			assert.Empty(t, students)
		})
	}
}

func TestOpenStorageUnknownDriver(t *testing.T) {
	_, err := openStorage(&config.Config{StorageDriver: "oracle"})
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	assert.False(t, setupLogger("prod").Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger("staging").Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger("dev").Enabled(ctx, slog.LevelDebug))
}
