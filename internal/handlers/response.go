package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// statusFor maps an error code onto an HTTP status.
func statusFor(code string) int {
	switch code {
	case models.CodeAuthentication:
		return http.StatusUnauthorized
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeValidation:
		return http.StatusBadRequest
	case models.CodeInvalidOperation:
		return http.StatusUnprocessableEntity
	case models.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, models.OK(data))
}

// fail renders err as a {success:false} envelope. Storage causes are never exposed.
func fail(c echo.Context, err error) error {
	appErr := models.AsAppError(err)
	return c.JSON(statusFor(appErr.Code), models.Fail(appErr))
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return models.NewValidationError("Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}
