package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bondledger/prizebond-api/internal/core/domain"
	"github.com/bondledger/prizebond-api/internal/core/ports"
)

const (
	// CookieName is the session cookie set at login and cleared at logout.
	CookieName = "auth_token"
	// ClaimsKey is the echo.Context key holding the verified *domain.SessionClaim.
	ClaimsKey = "session_claim"
)

// SessionToken returns the raw session token carried by the request, or "".
func SessionToken(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Session verifies the session cookie and injects the claim into context.
// Requests without a valid session stop here with 401.
func Session(verifier ports.SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim := verifier.Verify(SessionToken(c))
			if claim == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			c.Set(ClaimsKey, claim)
			return next(c)
		}
	}
}

// Claims returns the claim stored by Session, or nil.
func Claims(c echo.Context) *domain.SessionClaim {
	claim, _ := c.Get(ClaimsKey).(*domain.SessionClaim)
	return claim
}
