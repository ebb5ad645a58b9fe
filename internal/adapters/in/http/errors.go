package http

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a generic 500.
func (s *Server) writeError(c echo.Context, err error) error {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return c.JSON(status, Error{Code: status, Message: message})
}

func classify(err error) (int, string) {
	var (
		notFound   *errs.ObjectNotFoundError
		transition *errs.InvalidTransitionError
	)

	switch {
	case errors.Is(err, queries.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden, err.Error()
	case errors.As(err, &notFound):
		return http.StatusNotFound, fmt.Sprintf("%s not found", capitalize(notFound.ParamName))
	case errors.As(err, &transition):
		return http.StatusBadRequest, transition.Error()
	case errors.Is(err, errs.ErrInsufficientStock):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ports.ErrIdempotencyKeyInFlight):
		return http.StatusConflict, "A request with this Idempotency-Key is still being processed"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

func capitalize(s string) string {
	if s == "" {
		return "Object"
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
