package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bondledger/prizebond-api/internal/api/middleware"
	"github.com/bondledger/prizebond-api/internal/core/domain"
)

// ctxClaims extracts the session claim injected by the Session middleware and
// fails fast before any service call. A route mounted without the middleware
// therefore still answers 401 instead of running unscoped.
func ctxClaims(c echo.Context) (*domain.SessionClaim, error) {
	claim := middleware.Claims(c)
	if claim == nil || claim.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claim, nil
}
