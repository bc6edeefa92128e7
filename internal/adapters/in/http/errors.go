package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"foodgo/internal/pkg/errs"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError translates the core's error taxonomy to HTTP statuses. The
// error message is passed through: the taxonomy's messages name parameters
// and ids, never internals.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrExternalService):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusBadRequest
	}

	return c.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func respondForbidden(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, errorResponse{
		Code:    http.StatusForbidden,
		Message: message,
	})
}
