package app

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotReady is returned while the media server cannot be reached. It is
// retryable.
var ErrNotReady = errors.New("cannot connect to server")

// Setup pings the server once and marks the app ready if it answered.
func (a *App) Setup(ctx context.Context) error {
	ok, err := a.pinger.Ping(a.log.WithContext(ctx))
	if err != nil {
		a.ready.Store(false)
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	} else if !ok {
		a.ready.Store(false)
		return fmt.Errorf("%w: ping failed", ErrNotReady)
	}
	if !a.ready.Swap(true) {
		a.log.Info().Msg("Connected to server")
	}
	return nil
}

// SetupLoop calls [App.Setup] every interval until it succeeds or ctx is
// done.
func (a *App) SetupLoop(ctx context.Context, interval time.Duration) error {
	ticker := a.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		err := a.Setup(ctx)
		if err == nil {
			return nil
		} else if !errors.Is(err, ErrNotReady) {
			return err
		}
		a.log.Warn().Err(err).Dur("retry_in", interval).Msg("Server not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}
	}
}
