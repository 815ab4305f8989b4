// Package router wires the student handlers onto a ServeMux and wraps it
// with the gorilla/handlers middleware.
//
// Route table:
//
//	POST   /api/students        create a student
//	GET    /api/students        list all students
//	GET    /api/students/{id}   get one student
//	PUT    /api/students/{id}   replace a student
//	DELETE /api/students/{id}   delete a student
package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/aanand-mishra/students-api/internal/http/handlers/student"
	"github.com/aanand-mishra/students-api/internal/storage"
)

// New returns the complete HTTP handler for the API. Requests from
// allowedOrigins are granted CORS access; panics in a handler are logged
// through log and answered with a 500.
func New(store storage.Storage, allowedOrigins []string, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+student.BasePath, student.New(store))
	mux.HandleFunc("GET "+student.BasePath, student.GetList(store))
	mux.HandleFunc("GET "+student.BasePath+"/{id}", student.GetByID(store))
	mux.HandleFunc("PUT "+student.BasePath+"/{id}", student.Update(store))
	mux.HandleFunc("DELETE "+student.BasePath+"/{id}", student.Delete(store))

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{"Location"}),
	)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: log}),
	)

	return recovery(cors(mux))
}

// recoveryLogger adapts slog to the Println logger RecoveryHandler expects.
type recoveryLogger struct {
	log *slog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("recovered from panic", slog.String("error", fmt.Sprint(v...)))
}
