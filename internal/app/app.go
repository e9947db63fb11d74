package app

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/beeper/libserv/pkg/requestlog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/sublime-music/subsonic-source/internal/static"
	"github.com/sublime-music/subsonic-source/pkg/catalog"
)

const VERSION = "0.1.0"

// Pinger checks that the media server is reachable with the configured
// credentials.
type Pinger interface {
	Ping(ctx context.Context) (bool, error)
}

// Source is the browsable catalog served by the app.
type Source interface {
	Browse(ctx context.Context, identifier string) (*catalog.Node, error)
	Resolve(ctx context.Context, identifier string) (*catalog.PlayMedia, error)
}

type Options struct {
	// CORSOrigins are the origins allowed to call the JSON API from a
	// browser. Wildcards such as "https://*" are accepted.
	CORSOrigins []string
	// Clock drives the setup retry loop. Defaults to the real clock.
	Clock clockwork.Clock
}

type App struct {
	Router *chi.Mux
	log    *zerolog.Logger
	clock  clockwork.Clock

	pinger Pinger
	source Source
	ready  atomic.Bool
}

// NewApp creates the HTTP surface of the media source. It answers 503 on the
// catalog routes until [App.Setup] succeeds.
func NewApp(log *zerolog.Logger, pinger Pinger, source Source, opts Options) *App {
	app := App{
		log:    log,
		clock:  opts.Clock,
		pinger: pinger,
		source: source,
	}
	if app.clock == nil {
		app.clock = clockwork.NewRealClock()
	}
	app.Router = chi.NewRouter()
	app.Router.Use(hlog.NewHandler(*log))
	app.Router.Use(RequestID)
	app.Router.Use(requestlog.AccessLogger(true))
	app.Router.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		app.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet},
			AllowedHeaders: []string{"Accept", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
		}))
	}

	app.Router.Get("/healthz", app.healthz)
	app.Router.Get("/static/*", static.ServeStatic)

	app.Router.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Use(app.requireReady)
		r.Get("/", app.ui)
		r.Get("/ui", app.ui)
		r.Get("/browse", app.browse)
		r.Get("/resolve", app.resolve)
	})

	return &app
}

func (a *App) Ready() bool {
	return a.ready.Load()
}

func (a *App) requireReady(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.ready.Load() {
			writeError(w, r, ErrNotReady)
			return
		}
		next.ServeHTTP(w, r)
	})
}
