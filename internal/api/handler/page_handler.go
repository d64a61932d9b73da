package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the static pages of the web client from root.
// Access to them is decided by middleware.Guard before these run.
type PageHandler struct {
	root string
}

func NewPageHandler(root string) *PageHandler {
	return &PageHandler{root: root}
}

// Serve returns a handler that sends the named file from the web root.
func (h *PageHandler) Serve(name string) echo.HandlerFunc {
	path := filepath.Join(h.root, name)
	return func(c echo.Context) error {
		return c.File(path)
	}
}

// Assets is the directory holding scripts and stylesheets.
func (h *PageHandler) Assets() string {
	return filepath.Join(h.root, "assets")
}
