// Package storage defines the gateway every database backend implements.
//
// Handlers depend only on the Storage interface, so the HTTP layer is the
// same whether the rows live in a SQLite file driven by hand-written SQL or
// in PostgreSQL behind gorm. Tests swap in a mock through the same seam.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aanand-mishra/students-api/internal/types"
)

// Result kinds reported by a gateway. A nil error means the call succeeded.
var (
	// ErrNotFound is returned when no row has the requested id.
	ErrNotFound = errors.New("student not found")

	// ErrConflict is returned by ReplaceStudent when the target row no
	// longer exists at write time.
	ErrConflict = errors.New("student changed or was removed before the write")
)

// Storage is the persistence contract for the Student resource.
type Storage interface {
	// GetStudents returns every student. The slice is empty, never nil,
	// when the table has no rows. Order is unspecified.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByID returns ErrNotFound if no row matches.
	GetStudentByID(ctx context.Context, id uuid.UUID) (types.Student, error)

	// CreateStudent inserts student as given and returns the stored record.
	// The caller assigns the ID.
	CreateStudent(ctx context.Context, student types.Student) (types.Student, error)

	// ReplaceStudent overwrites every column of the row whose id equals
	// student.ID. It returns ErrConflict when no row matched.
	ReplaceStudent(ctx context.Context, student types.Student) error

	// DeleteStudentByID returns ErrNotFound if no row matched.
	DeleteStudentByID(ctx context.Context, id uuid.UUID) error

	StudentExists(ctx context.Context, id uuid.UUID) (bool, error)

	// Close releases the underlying connection pool.
	Close() error
}
