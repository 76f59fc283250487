package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sngm3741/granite-company/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactLike struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=10"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(contactLike{Name: "A", Email: "a@example.com", Message: "hi"}))

	err := Validate(contactLike{Email: "broken", Message: "this is far too long"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var reqErr *RequestValidationError
	require.ErrorAs(t, err, &reqErr)
	fields := reqErr.Fields()
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at most 10 characters", fields["message"])
}

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewValidationError("rating", "must be between 1 and 5"), http.StatusBadRequest},
		{"request validation", Validate(contactLike{}), http.StatusBadRequest},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"store", domain.NewStoreError("find", errors.New("down")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(nil, rec, "op", tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteServiceError_RequestFields(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(nil, rec, "op", Validate(contactLike{Name: "A", Email: "nope", Message: "ok"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "must be a valid email address", body.Fields["email"])
	assert.Contains(t, body.Error, "email")
}
