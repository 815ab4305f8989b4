package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteJSON(w, http.StatusTeapot, GeneralError(errors.New("boom"))))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","error":"boom"}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Code  string `validate:"max=3"`
		Email string `validate:"email"`
	}

	err := validator.New().Struct(payload{Code: "ABCD", Email: "nope"})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	assert.Equal(t, Response{
		Status: StatusError,
		Error:  "field Name is required, field Code must be at most 3 characters long, field Email is invalid",
	}, ValidationError(errs))
}
