// Package storagetest holds the behaviour every storage.Storage backend must
// share. Backend packages call Run from their own tests with a fresh store.
package storagetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
)

// Run exercises newStore, which must return an empty store on every call.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Run("EmptyList", func(t *testing.T) {
		s := newStore(t)

		students, err := s.GetStudents(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, students)
		assert.Empty(t, students)
	})

	t.Run("CreateThenGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := ann()
		created, err := s.CreateStudent(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in, created)

		got, err := s.GetStudentByID(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, in, got)

		all, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.Equal(t, []types.Student{in}, all)
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetStudentByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Replace", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := ann()
		_, err := s.CreateStudent(ctx, in)
		require.NoError(t, err)

		in.Program = "Mathematics"
		require.NoError(t, s.ReplaceStudent(ctx, in))

		got, err := s.GetStudentByID(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mathematics", got.Program)
	})

	t.Run("ReplaceUnchangedValues", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := ann()
		_, err := s.CreateStudent(ctx, in)
		require.NoError(t, err)

		assert.NoError(t, s.ReplaceStudent(ctx, in))
	})

	t.Run("ReplaceMissingConflicts", func(t *testing.T) {
		s := newStore(t)

		err := s.ReplaceStudent(context.Background(), ann())
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := ann()
		_, err := s.CreateStudent(ctx, in)
		require.NoError(t, err)

		require.NoError(t, s.DeleteStudentByID(ctx, in.ID))

		_, err = s.GetStudentByID(ctx, in.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		assert.ErrorIs(t, s.DeleteStudentByID(ctx, in.ID), storage.ErrNotFound)
	})

	t.Run("Exists", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := ann()
		ok, err := s.StudentExists(ctx, in.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = s.CreateStudent(ctx, in)
		require.NoError(t, err)

		ok, err = s.StudentExists(ctx, in.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("DuplicateIDFails", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := ann()
		_, err := s.CreateStudent(ctx, in)
		require.NoError(t, err)

		_, err = s.CreateStudent(ctx, in)
		assert.Error(t, err)
	})
}

func ann() types.Student {
	return types.Student{
		ID:        uuid.New(),
		FirstName: "Ann",
		LastName:  "Lee",
		Program:   "CS",
	}
}
