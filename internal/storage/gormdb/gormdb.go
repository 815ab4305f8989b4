// Package gormdb implements storage.Storage on top of gorm, so the same
// gateway runs against PostgreSQL in production and SQLite locally.
package gormdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
)

type Gorm struct {
	db *gorm.DB
}

var _ storage.Storage = (*Gorm)(nil)

// New opens the database selected by cfg.StorageDriver and migrates the
// students table.
func New(cfg *config.Config) (*Gorm, error) {
	var dialector gorm.Dialector

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Postgres.DSN())
	case config.DriverGormSQLite:
		dialector = sqlite.Open(cfg.StoragePath)
	default:
		return nil, fmt.Errorf("gormdb.New: unsupported driver %q", cfg.StorageDriver)
	}

	level := gormlogger.Warn
	if cfg.Env == "dev" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("gormdb.New: open db: %w", err)
	}

	g := &Gorm{db: db}

	if err := db.AutoMigrate(&types.Student{}); err != nil {
		g.Close()
		return nil, fmt.Errorf("gormdb.New: migrate: %w", err)
	}

	return g, nil
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *Gorm) GetStudents(ctx context.Context) ([]types.Student, error) {
	students := make([]types.Student, 0)

	if err := g.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("GetStudents: %w", err)
	}

	return students, nil
}

func (g *Gorm) GetStudentByID(ctx context.Context, id uuid.UUID) (types.Student, error) {
	var student types.Student

	err := g.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: %w", err)
	}

	return student, nil
}

func (g *Gorm) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	if err := g.db.WithContext(ctx).Create(&student).Error; err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: %w", err)
	}

	return student, nil
}

// ReplaceStudent updates every column by primary key. Save is avoided on
// purpose: it would insert when the row is missing.
func (g *Gorm) ReplaceStudent(ctx context.Context, student types.Student) error {
	result := g.db.WithContext(ctx).
		Model(&types.Student{}).
		Where("id = ?", student.ID).
		Updates(map[string]any{
			"first_name": student.FirstName,
			"last_name":  student.LastName,
			"program":    student.Program,
		})
	if result.Error != nil {
		return fmt.Errorf("ReplaceStudent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrConflict
	}

	return nil
}

func (g *Gorm) DeleteStudentByID(ctx context.Context, id uuid.UUID) error {
	result := g.db.WithContext(ctx).Where("id = ?", id).Delete(&types.Student{})
	if result.Error != nil {
		return fmt.Errorf("DeleteStudentByID: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (g *Gorm) StudentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64

	err := g.db.WithContext(ctx).Model(&types.Student{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("StudentExists: %w", err)
	}

	return count > 0, nil
}
