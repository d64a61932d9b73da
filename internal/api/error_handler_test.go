package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bondledger/prizebond-api/internal/api/response"
	"github.com/bondledger/prizebond-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantMsg    string
		wantErrors []string
		wantLogged bool
	}{
		{name: "validation", err: domain.NewValidationError("name is required"), wantCode: http.StatusBadRequest, wantMsg: "validation failed", wantErrors: []string{"name is required"}},
		{name: "invalid credentials", err: domain.ErrInvalidCredentials, wantCode: http.StatusBadRequest, wantMsg: "invalid email or password"},
		{name: "user exists", err: domain.ErrUserExists, wantCode: http.StatusBadRequest, wantMsg: "email already registered"},
		{name: "duplicate bond", err: domain.ErrDuplicateBond, wantCode: http.StatusBadRequest, wantMsg: domain.ErrDuplicateBond.Error()},
		{name: "unauthorized", err: domain.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantMsg: "unauthorized"},
		{name: "card not found", err: domain.ErrCardNotFound, wantCode: http.StatusNotFound, wantMsg: "card not found"},
		{name: "wrapped bond not found", err: fmt.Errorf("update: %w", domain.ErrBondNotFound), wantCode: http.StatusNotFound, wantMsg: "bond not found"},
		{name: "echo error", err: echo.NewHTTPError(http.StatusUnauthorized, "authentication required"), wantCode: http.StatusUnauthorized, wantMsg: "authentication required"},
		{name: "unexpected", err: errors.New("mongo: connection refused"), wantCode: http.StatusInternalServerError, wantMsg: "internal server error", wantLogged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			e := echo.New()
			e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.New(&logBuf))

			req := httptest.NewRequest(http.MethodGet, "/api/card", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			e.HTTPErrorHandler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var env response.Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if env.Success || env.Data != nil {
				t.Errorf("error envelope must have success=false and data=null: %+v", env)
			}
			if env.StatusCode != tt.wantCode {
				t.Errorf("expected statusCode %d, got %d", tt.wantCode, env.StatusCode)
			}
			if env.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, env.Message)
			}
			if strings.Join(env.Errors, "|") != strings.Join(tt.wantErrors, "|") {
				t.Errorf("expected errors %v, got %v", tt.wantErrors, env.Errors)
			}

			logged := strings.Contains(logBuf.String(), "unhandled error")
			if logged != tt.wantLogged {
				t.Errorf("logged = %v, want %v (log: %s)", logged, tt.wantLogged, logBuf.String())
			}
			if strings.Contains(rec.Body.String(), "connection refused") {
				t.Error("internal error detail leaked to client")
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusAccepted)

	h(errors.New("late failure"), c)

	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("committed response must be left alone, got %d %q", rec.Code, rec.Body.String())
	}
}
