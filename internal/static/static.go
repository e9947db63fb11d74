package static

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type staticFile struct {
	data        []byte
	contentType string
}

//go:embed style.css
var styleCSS []byte

var staticfiles = map[string]staticFile{
	"style.css": {data: styleCSS, contentType: "text/css; charset=utf-8"},
}

func ServeStatic(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context()).With().
		Str("path", r.URL.Path).
		Logger()
	if file, found := staticfiles[chi.URLParam(r, "*")]; !found {
		log.Warn().Msg("couldn't find file to serve")
		w.WriteHeader(http.StatusNotFound)
	} else {
		log.Debug().Msg("serving static file")
		w.Header().Add("Content-Type", file.contentType)
		w.Header().Add("Cache-Control", "max-age=3600")
		w.Write(file.data)
	}
}
