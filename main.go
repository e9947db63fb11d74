package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/sublime-music/subsonic-source/internal/app"
	"github.com/sublime-music/subsonic-source/internal/config"
	"github.com/sublime-music/subsonic-source/pkg/catalog"
	"github.com/sublime-music/subsonic-source/pkg/subsonic"
)

const (
	setupRetryInterval = 30 * time.Second
	shutdownTimeout    = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to the config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("subsonic-source", app.VERSION)
		return
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr}
	log.Logger = log.Output(console)
	cfg, err := config.Load(afero.NewOsFs(), config.Path(*configPath), &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.LogFile != "" {
		log.Logger = log.Output(io.MultiWriter(console, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    1,
			MaxBackups: 2,
		}))
	}
	log.Logger = log.Logger.With().Timestamp().Logger().Level(cfg.Level())
	defaultContextLogger := log.Logger.With().Bool("default_context_log", true).Caller().Logger()
	zerolog.DefaultContextLogger = &defaultContextLogger

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("Exiting")
	}
}

func run(cfg *config.Config) error {
	client, err := subsonic.NewClient(cfg.ClientConfig("subsonic-source/" + app.VERSION))
	if err != nil {
		return err
	}
	defer client.Close()

	projector := catalog.NewProjector(client, cfg.CatalogOptions())
	a := app.NewApp(&log.Logger, client, projector, app.Options{
		CORSOrigins: cfg.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("listen", cfg.Listen).Str("server", cfg.Server.URL).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := a.SetupLoop(gctx, setupRetryInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
