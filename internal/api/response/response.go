// Package response renders the JSON envelope shared by every API endpoint:
//
//	{"statusCode": 200, "data": {...}, "message": "...", "success": true}
//
// Error responses carry "data": null, "success": false and, for validation
// failures, an "errors" list with one message per field.
package response

import (
	"github.com/labstack/echo/v4"
)

type Envelope struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors,omitempty"`
}

// OK writes a success envelope.
func OK(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Fail writes an error envelope.
func Fail(c echo.Context, code int, message string, errs ...string) error {
	return c.JSON(code, Envelope{
		StatusCode: code,
		Message:    message,
		Errors:     errs,
	})
}
