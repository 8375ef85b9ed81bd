package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.CodeAuthentication, http.StatusUnauthorized},
		{models.CodeNotFound, http.StatusNotFound},
		{models.CodeValidation, http.StatusBadRequest},
		{models.CodeInvalidOperation, http.StatusUnprocessableEntity},
		{models.CodeForbidden, http.StatusForbidden},
		{models.CodeStorage, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.code), tt.code)
	}
}

func TestFail_HidesStorageCause(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := models.NewStorageError("Failed to fetch notifications", errors.New("pq: connection refused"))
	require.NoError(t, fail(c, err))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to fetch notifications","code":"STORAGE_ERROR"}`, rec.Body.String())
}

func TestFail_UnknownError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, fail(c, errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
