package handlers

import (
	"errors"
	"net/http"

	"github.com/gobook-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// httpError maps service errors onto the HTTP boundary. Unknown errors surface
// as a generic 500; the detail stays server-side.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrParentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrDuplicateRequest), errors.Is(err, services.ErrAlreadyFriends):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrSelfRequest), errors.Is(err, services.ErrDepthExceeded):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
