package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.Session, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if env["success"] != true {
		t.Fatalf("expected success envelope, got %v", env)
	}
	data, _ := env["data"].(map[string]any)
	return data
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: "u1", Name: name, Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, domain.SessionTTL, false)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if data := decodeData(t, rec); data["userId"] != "u1" {
		t.Errorf("expected userId u1, got %v", data["userId"])
	}
	if findCookie(rec, "auth_token") != nil {
		t.Error("registration must not issue a session")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, domain.SessionTTL, false)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/register", `{"name":"","email":"nope","password":"1"}`)

	err := h.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Errorf("expected 3 field errors, got %v", ve.Fields)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, domain.SessionTTL, false)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.Session, error) {
			return &domain.Session{
				Token: "signed.jwt.token",
				Claim: domain.SessionClaim{UserID: "u1", Email: email, ExpiresAt: time.Now().Add(domain.SessionTTL)},
			}, nil
		},
	}

	tests := []struct {
		name       string
		secure     bool
		wantSecure bool
	}{
		{name: "development", secure: false, wantSecure: false},
		{name: "production", secure: true, wantSecure: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(stub, domain.SessionTTL, tt.secure)
			c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"pw"}`)

			if err := h.Login(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}

			cookie := findCookie(rec, "auth_token")
			if cookie == nil {
				t.Fatal("auth_token cookie not set")
			}
			if cookie.Value != "signed.jwt.token" {
				t.Errorf("unexpected cookie value %q", cookie.Value)
			}
			if !cookie.HttpOnly {
				t.Error("cookie must be HttpOnly")
			}
			if cookie.SameSite != http.SameSiteStrictMode {
				t.Errorf("expected SameSite=Strict, got %v", cookie.SameSite)
			}
			if cookie.Path != "/" {
				t.Errorf("expected Path /, got %q", cookie.Path)
			}
			if cookie.MaxAge != 604800 {
				t.Errorf("expected Max-Age 604800, got %d", cookie.MaxAge)
			}
			if cookie.Secure != tt.wantSecure {
				t.Errorf("expected Secure=%v, got %v", tt.wantSecure, cookie.Secure)
			}

			if strings.Contains(rec.Body.String(), "signed.jwt.token") {
				t.Error("token must not appear in the response body")
			}
			if data := decodeData(t, rec); data["userId"] != "u1" {
				t.Errorf("expected userId u1, got %v", data["userId"])
			}
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, domain.SessionTTL, false)
	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"bad"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if findCookie(rec, "auth_token") != nil {
		t.Error("failed login must not set a cookie")
	}
}

func TestAuthHandler_Login_BadPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, domain.SessionTTL, false)
	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{not json`)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, domain.SessionTTL, true)
	c, rec := newJSONContext(http.MethodPost, "/api/auth/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	header := rec.Header().Get("Set-Cookie")
	for _, want := range []string{"auth_token=", "Max-Age=0", "HttpOnly", "SameSite=Strict", "Path=/", "Secure"} {
		if !strings.Contains(header, want) {
			t.Errorf("Set-Cookie %q missing %q", header, want)
		}
	}
}
