package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bondledger/prizebond-api/internal/api/metrics"
	"github.com/bondledger/prizebond-api/internal/api/middleware"
	"github.com/bondledger/prizebond-api/internal/api/response"
	"github.com/bondledger/prizebond-api/internal/core/ports"
)

// AuthHandler serves registration, login and logout. Sessions travel only in
// the auth_token cookie; the token is never part of a response body.
type AuthHandler struct {
	authService  ports.AuthService
	ttl          time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, ttl time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, ttl: ttl, secureCookie: secureCookie}
}

// Register creates a new user account. No session is issued.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  response.Envelope{data=userIDResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	metrics.RegistrationsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusCreated, "user registered", userIDResponse{UserID: user.ID})
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Description  Unknown email and wrong password produce the same 400 response.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=userIDResponse}
// @Header       200   {string}  Set-Cookie  "auth_token=<jwt>; HttpOnly; SameSite=Strict; Max-Age=604800"
// @Failure      400   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie(session.Token, int(h.ttl.Seconds())))
	return response.OK(c, http.StatusOK, "login successful", userIDResponse{UserID: session.Claim.UserID})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side revocation.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie("", -1))
	return response.OK(c, http.StatusOK, "logged out", nil)
}

// cookie builds the session cookie. maxAge < 0 deletes it (Max-Age=0 on the wire).
func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
