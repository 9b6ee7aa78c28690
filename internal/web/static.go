package web

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/oxturret/turretweb/internal/web/handler"
)

// Only these extensions are served; anything else in the static tree is
// invisible to clients.
var staticMIMETypes = map[string]string{
	"html": "text/html; charset=utf-8",
	"js":   "application/javascript",
	"wasm": "application/wasm",
	"json": "application/manifest+json",
	"png":  "image/png",
}

// StaticHandler serves the game's client assets without authentication.
type StaticHandler struct {
	root string
}

// NewStaticHandler creates a static handler rooted at the given directory.
func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{root: root}
}

// resolve maps a request path to a file under the root. Cleaning the path
// against "/" first keeps traversal sequences inside the root.
func (h *StaticHandler) resolve(urlPath string) string {
	cleaned := path.Clean("/" + urlPath)
	return filepath.Join(h.root, filepath.FromSlash(cleaned))
}

// CanServe reports whether the request path names a regular file in the
// static tree. Requests it cannot serve fall through to the page routes.
func (h *StaticHandler) CanServe(urlPath string) bool {
	info, err := os.Stat(h.resolve(urlPath))
	return err == nil && info.Mode().IsRegular()
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	full := h.resolve(r.URL.Path)

	ext := strings.TrimPrefix(filepath.Ext(full), ".")
	mimeType, ok := staticMIMETypes[ext]
	if !ok {
		handler.NotFound(w, r)
		return
	}

	f, err := os.Open(full)
	if err != nil {
		handler.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, f)
}
