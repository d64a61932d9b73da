package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bondledger/prizebond-api/internal/core/ports"
)

const (
	homePath  = "/"
	loginPath = "/login"
)

// publicPaths are only useful to anonymous visitors.
var publicPaths = []string{"/login", "/register", "/api/auth/login", "/api/auth/register"}

// guardedPaths need a signed-in user; "/" is matched exactly.
var guardedPaths = []string{"/cards", "/dashboard", "/profile"}

// Guard decides, before any handler runs, whether a page request may proceed:
//   - signed-in users hitting a public path are sent home;
//   - anonymous users (or expired/invalid tokens) hitting a guarded page are sent to /login;
//   - everything else passes through. API handlers verify sessions themselves.
//
// Redirects use 307 so the method and body are preserved.
func Guard(verifier ports.SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			switch {
			case isPublic(path):
				if verifier.Verify(SessionToken(c)) != nil {
					return c.Redirect(http.StatusTemporaryRedirect, homePath)
				}
			case isGuarded(path):
				if verifier.Verify(SessionToken(c)) == nil {
					return c.Redirect(http.StatusTemporaryRedirect, loginPath)
				}
			}
			return next(c)
		}
	}
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if hasPathPrefix(path, p) {
			return true
		}
	}
	return false
}

func isGuarded(path string) bool {
	if path == homePath {
		return true
	}
	for _, p := range guardedPaths {
		if hasPathPrefix(path, p) {
			return true
		}
	}
	return false
}

// hasPathPrefix matches prefix as a whole path segment: "/login" matches
// "/login" and "/login/x" but not "/loginx".
func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
