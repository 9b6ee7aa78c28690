package handler

import (
	"net/http"

	"github.com/oxturret/turretweb/internal/web/templates/pages"
)

// HomeHandler handles the mode selection page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the local/online selection screen.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, pages.SelectScreen())
}

// NotFound renders the shared 404 page.
func NotFound(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusNotFound, pages.NotFound())
}
