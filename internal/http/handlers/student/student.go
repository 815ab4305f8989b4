// Package student contains the HTTP handlers for the Student resource.
//
// Each exported function is a factory: it receives the storage gateway once,
// at route registration, and returns the http.HandlerFunc that serves every
// request for that route.
//
//	mux.HandleFunc("POST /api/students", student.New(store))
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/aanand-mishra/students-api/internal/utils/response"
)

// BasePath is the collection route; single students live under BasePath/{id}.
const BasePath = "/api/students"

var (
	errEmptyBody  = errors.New("request body is empty")
	errIDMismatch = errors.New("id in body does not match id in path")

	// errConcurrentUpdate covers the rare case where an update touched no
	// row although the row still exists. No retry is attempted.
	errConcurrentUpdate = errors.New("student was modified concurrently, update not applied")
)

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves every request.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so messages match the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// New handles POST /api/students.
//
// Any id in the payload is discarded; the server assigns a fresh one.
//
//	201 Created  + student, Location: /api/students/{id}
//	400          empty or malformed body, failed validation
//	500          database error
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		student.ID = uuid.New()

		created, err := store.CreateStudent(r.Context(), student)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.String("id", created.ID.String()))

		w.Header().Set("Location", fmt.Sprintf("%s/%s", BasePath, created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetByID handles GET /api/students/{id}.
//
//	200  student
//	400  id is not a UUID
//	404  no such student
//	500  database error
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.String("id", id.String()))

		student, err := store.GetStudentByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, "error getting student", id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students. An empty table yields [], not null.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents(r.Context())
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		if students == nil {
			students = []types.Student{}
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// Update handles PUT /api/students/{id}. The payload replaces the stored
// record in full and its id must equal the path id.
//
// If the write matches no row, existence is checked once more: a missing
// record is a 404, a present one is reported as an internal error.
//
//	200  updated student
//	400  bad id, bad body, failed validation, or id mismatch
//	404  no such student
//	500  database error or unresolved concurrent modification
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.String("id", id.String()))

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		if student.ID != id {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errIDMismatch))
			return
		}

		err := store.ReplaceStudent(r.Context(), student)
		if errors.Is(err, storage.ErrConflict) {
			exists, existsErr := store.StudentExists(r.Context(), id)
			switch {
			case existsErr != nil:
				err = existsErr
			case !exists:
				err = storage.ErrNotFound
			default:
				err = errConcurrentUpdate
			}
		}
		if err != nil {
			writeStoreError(w, "error updating student", id, err)
			return
		}

		slog.Info("student updated", slog.String("id", id.String()))
		response.WriteJSON(w, http.StatusOK, student)
	}
}

// Delete handles DELETE /api/students/{id}.
//
//	204  deleted, empty body
//	400  id is not a UUID
//	404  no such student
//	500  database error
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.String("id", id.String()))

		if _, err := store.GetStudentByID(r.Context(), id); err != nil {
			writeStoreError(w, "error looking up student", id, err)
			return
		}

		if err := store.DeleteStudentByID(r.Context(), id); err != nil {
			writeStoreError(w, "error deleting student", id, err)
			return
		}

		slog.Info("student deleted", slog.String("id", id.String()))
		response.NoContent(w)
	}
}

// pathID parses the {id} segment, answering 400 itself when it is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.PathValue("id")

	id, err := uuid.Parse(raw)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(fmt.Errorf("invalid id %q: must be a UUID", raw)))
		return uuid.Nil, false
	}

	return id, true
}

// decodeStudent reads and validates the JSON body, answering 400 itself on
// any failure.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var student types.Student

	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errEmptyBody))
		return types.Student{}, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return types.Student{}, false
	}

	if err := validate.Struct(student); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return types.Student{}, false
	}

	return student, true
}

// writeStoreError maps gateway errors onto status codes: ErrNotFound is a
// 404, everything else a 500.
func writeStoreError(w http.ResponseWriter, msg string, id uuid.UUID, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}

	slog.Error(msg,
		slog.String("id", id.String()),
		slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
