// Package sqlite implements storage.Storage with hand-written SQL over
// database/sql and the mattn/go-sqlite3 driver.
//
// UUIDs are stored in their canonical text form in a TEXT primary key.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is safe for concurrent use; *sql.DB is a pool.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the database file at cfg.StoragePath and creates the students
// table if it does not exist yet.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         TEXT        PRIMARY KEY,
			first_name VARCHAR(50) NOT NULL,
			last_name  VARCHAR(50) NOT NULL,
			program    VARCHAR(50) NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var (
		student types.Student
		id      string
	)

	if err := row.Scan(&id, &student.FirstName, &student.LastName, &student.Program); err != nil {
		return types.Student{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return types.Student{}, fmt.Errorf("malformed id %q in students table: %w", id, err)
	}
	student.ID = parsed

	return student, nil
}

func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, first_name, last_name, program FROM students",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

func (s *SQLite) GetStudentByID(ctx context.Context, id uuid.UUID) (types.Student, error) {
	row := s.Db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, program FROM students WHERE id = ? LIMIT 1",
		id.String(),
	)

	student, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

func (s *SQLite) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	_, err := s.Db.ExecContext(ctx,
		"INSERT INTO students (id, first_name, last_name, program) VALUES (?, ?, ?, ?)",
		student.ID.String(), student.FirstName, student.LastName, student.Program,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return student, nil
}

// ReplaceStudent overwrites all columns in one UPDATE. SQLite counts matched
// rows, not changed ones, so zero rows affected means the row is gone.
func (s *SQLite) ReplaceStudent(ctx context.Context, student types.Student) error {
	result, err := s.Db.ExecContext(ctx,
		"UPDATE students SET first_name = ?, last_name = ?, program = ? WHERE id = ?",
		student.FirstName, student.LastName, student.Program, student.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("ReplaceStudent: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ReplaceStudent: rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrConflict
	}

	return nil
}

func (s *SQLite) DeleteStudentByID(ctx context.Context, id uuid.UUID) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *SQLite) StudentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool

	err := s.Db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM students WHERE id = ?)", id.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("StudentExists: scan: %w", err)
	}

	return exists, nil
}
