package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSession_ValidCookie(t *testing.T) {
	c, rec := newRequest(http.MethodGet, "/api/card", validToken)

	called := false
	h := Session(stubVerifier{})(func(c echo.Context) error {
		called = true
		claim := Claims(c)
		if claim == nil || claim.UserID != "user-1" {
			t.Fatalf("claim not injected: %+v", claim)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_Rejects(t *testing.T) {
	tests := map[string]string{
		"no cookie":     "",
		"invalid token": "garbage",
		"expired token": expiredToken,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			c, _ := newRequest(http.MethodGet, "/api/card", token)

			called := false
			err := Session(stubVerifier{})(okHandler(&called))(c)

			if called {
				t.Fatal("should not reach next")
			}
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}

func TestClaims_AbsentWithoutMiddleware(t *testing.T) {
	c, _ := newRequest(http.MethodGet, "/", "")
	if Claims(c) != nil {
		t.Fatal("expected nil claim")
	}
}
