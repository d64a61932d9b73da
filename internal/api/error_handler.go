package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bondledger/prizebond-api/internal/api/response"
	"github.com/bondledger/prizebond-api/internal/core/domain"
)

// domainErrors maps sentinel errors to status codes. The sentinel's own text
// is the client-facing message, so wrapping context never leaks out.
var domainErrors = []struct {
	err  error
	code int
}{
	{domain.ErrInvalidCredentials, http.StatusBadRequest},
	{domain.ErrUserExists, http.StatusBadRequest},
	{domain.ErrDuplicateBond, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrCardNotFound, http.StatusNotFound},
	{domain.ErrBondNotFound, http.StatusNotFound},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the standard response envelope with success=false.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fields := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = response.Fail(c, code, msg, fields...)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []string) {
	// Echo's own errors (bind failures, 404 from router, 401 from middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, domain.ErrValidation.Error(), ve.Fields
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return m.code, m.err.Error(), nil
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", nil
}
