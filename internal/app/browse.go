package app

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/sublime-music/subsonic-source/internal/components"
)

// browse answers GET /browse?id=<identifier> with the JSON node. A missing id
// is the root.
func (a *App) browse(w http.ResponseWriter, r *http.Request) {
	node, err := a.source.Browse(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, node)
}

func (a *App) resolve(w http.ResponseWriter, r *http.Request) {
	media, err := a.source.Resolve(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, media)
}

func (a *App) ui(w http.ResponseWriter, r *http.Request) {
	node, err := a.source.Browse(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	templ.Handler(components.NodePage(node)).ServeHTTP(w, r)
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if !a.ready.Load() {
		_ = writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": VERSION})
}
