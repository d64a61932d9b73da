package middleware

import (
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

const (
	validToken   = "valid-token"
	expiredToken = "expired-token"
)

// stubVerifier accepts only validToken.
type stubVerifier struct{}

func (stubVerifier) Verify(token string) *domain.SessionClaim {
	if token == validToken {
		return &domain.SessionClaim{UserID: "user-1", Email: "a@example.com"}
	}
	return nil
}

func newRequest(method, path, token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}
