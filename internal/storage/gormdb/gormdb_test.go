package gormdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *Gorm {
	t.Helper()

	g, err := New(&config.Config{
		Env:           "test",
		StorageDriver: config.DriverGormSQLite,
		StoragePath:   filepath.Join(t.TempDir(), "students.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })

	return g
}

func TestStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return newTestStore(t)
	})
}

func TestNewRejectsRawSQLiteDriver(t *testing.T) {
	_, err := New(&config.Config{StorageDriver: config.DriverSQLite, StoragePath: "x.db"})
	assert.Error(t, err)
}

func TestMigrationCreatesColumns(t *testing.T) {
	g := newTestStore(t)

	for _, column := range []string{"id", "first_name", "last_name", "program"} {
		assert.True(t, g.db.Migrator().HasColumn("students", column), column)
	}
}
