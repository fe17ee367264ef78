package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tourista/tourista-api/internal/service"
	"github.com/tourista/tourista-api/internal/util"
)

// writeServiceError is the single translation point from service errors to
// response status codes. Collaborator failures surface as 500 unchanged;
// nothing is retried here.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrPasswordTooWeak),
		errors.Is(err, service.ErrResetTokenInvalid):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrMissingCredential),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrStaleCredential),
		errors.Is(err, service.ErrUnknownSubject):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTourNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrEmailAlreadyUsed):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, service.ErrNotificationFailed):
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}
