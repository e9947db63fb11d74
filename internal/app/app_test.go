package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublime-music/subsonic-source/internal/app"
	"github.com/sublime-music/subsonic-source/pkg/catalog"
	"github.com/sublime-music/subsonic-source/pkg/subsonic"
)

type fakePinger struct {
	mu      sync.Mutex
	results []error
	ok      bool
	calls   int
}

func (f *fakePinger) Ping(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.results) > 0 {
		err := f.results[0]
		f.results = f.results[1:]
		return err == nil && f.ok, err
	}
	return f.ok, nil
}

func (f *fakePinger) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSource struct {
	err   error
	ids   []string
	panic bool
}

func (f *fakeSource) Browse(ctx context.Context, identifier string) (*catalog.Node, error) {
	f.ids = append(f.ids, identifier)
	if f.panic {
		panic("boom")
	} else if f.err != nil {
		return nil, f.err
	}
	id, _ := catalog.ParseIdentifier(identifier)
	return &catalog.Node{
		Identifier: id,
		Title:      "Kind of Blue",
		MediaClass: catalog.MediaClassAlbum,
		CanExpand:  true,
		Children: []catalog.Node{{
			Identifier: catalog.NewIdentifier(catalog.KindSong, "s-1"),
			Title:      "So What",
			MediaClass: catalog.MediaClassMusic,
			CanPlay:    true,
		}},
	}, nil
}

func (f *fakeSource) Resolve(ctx context.Context, identifier string) (*catalog.PlayMedia, error) {
	f.ids = append(f.ids, identifier)
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.PlayMedia{URL: "https://music.example.com/rest/stream.view?id=s-1", MimeType: "audio/flac"}, nil
}

func newApp(t *testing.T, pinger *fakePinger, source *fakeSource) *app.App {
	t.Helper()
	log := zerolog.Nop()
	return app.NewApp(&log, pinger, source, app.Options{})
}

func newReadyApp(t *testing.T, source *fakeSource) *app.App {
	t.Helper()
	a := newApp(t, &fakePinger{ok: true}, source)
	require.NoError(t, a.Setup(context.Background()))
	return a
}

func get(a *app.App, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSetup(t *testing.T) {
	pinger := &fakePinger{ok: true}
	a := newApp(t, pinger, &fakeSource{})
	assert.False(t, a.Ready())

	require.NoError(t, a.Setup(context.Background()))
	assert.True(t, a.Ready())
	assert.Equal(t, 1, pinger.calls)
}

func TestSetupNotReady(t *testing.T) {
	a := newApp(t, &fakePinger{ok: false}, &fakeSource{})
	err := a.Setup(context.Background())
	assert.ErrorIs(t, err, app.ErrNotReady)
	assert.False(t, a.Ready())

	a = newApp(t, &fakePinger{ok: true, results: []error{subsonic.ErrTransportTimeout}}, &fakeSource{})
	err = a.Setup(context.Background())
	assert.ErrorIs(t, err, app.ErrNotReady)
	assert.ErrorIs(t, err, subsonic.ErrTransportTimeout)
	assert.False(t, a.Ready())
}

func TestSetupLoopRetries(t *testing.T) {
	pinger := &fakePinger{ok: true, results: []error{subsonic.ErrTransportUnavailable, subsonic.ErrTransportTimeout}}
	clock := clockwork.NewFakeClock()
	log := zerolog.Nop()
	a := app.NewApp(&log, pinger, &fakeSource{}, app.Options{Clock: clock})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		errc <- a.SetupLoop(ctx, 30*time.Second)
	}()

	for calls := 1; calls <= 2; calls++ {
		require.Eventually(t, func() bool { return pinger.Calls() == calls }, time.Second, time.Millisecond)
		assert.False(t, a.Ready())
		clock.Advance(30 * time.Second)
	}
	require.NoError(t, <-errc)
	assert.True(t, a.Ready())
	assert.Equal(t, 3, pinger.Calls())
}

func TestSetupLoopCancelled(t *testing.T) {
	a := newApp(t, &fakePinger{ok: false}, &fakeSource{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := a.SetupLoop(ctx, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, a.Ready())
}

func TestHealthz(t *testing.T) {
	a := newApp(t, &fakePinger{ok: true}, &fakeSource{})

	rec := get(a, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"not ready"}`, rec.Body.String())

	require.NoError(t, a.Setup(context.Background()))
	rec = get(a, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"status":"ok","version":%q}`, app.VERSION), rec.Body.String())
}

func TestNotReady(t *testing.T) {
	source := &fakeSource{}
	a := newApp(t, &fakePinger{ok: true}, source)

	for _, target := range []string{"/", "/ui?id=album/7", "/browse", "/resolve?id=song/s-1"} {
		rec := get(a, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
	assert.Empty(t, source.ids)
}

func TestBrowse(t *testing.T) {
	source := &fakeSource{}
	a := newReadyApp(t, source)

	rec := get(a, "/browse?id=album%2F7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"identifier": "album/7",
		"title": "Kind of Blue",
		"media_class": "album",
		"media_content_type": "",
		"can_play": false,
		"can_expand": true,
		"children": [{
			"identifier": "song/s-1",
			"title": "So What",
			"media_class": "music",
			"media_content_type": "",
			"can_play": true,
			"can_expand": false,
			"children": null
		}]
	}`, rec.Body.String())

	rec = get(a, "/browse")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"album/7", ""}, source.ids)
}

func TestResolve(t *testing.T) {
	source := &fakeSource{}
	a := newReadyApp(t, source)

	rec := get(a, "/resolve?id=song/s-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://music.example.com/rest/stream.view?id=s-1","mime_type":"audio/flac"}`, rec.Body.String())
	assert.Equal(t, []string{"song/s-1"}, source.ids)
}

func TestErrorStatus(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: album/7", catalog.ErrNotResolvable), http.StatusNotFound},
		{fmt.Errorf("%w: song s-1: %w", catalog.ErrNotResolvable, subsonic.ErrDataNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: getSong: context deadline exceeded", subsonic.ErrTransportTimeout), http.StatusGatewayTimeout},
		{subsonic.ErrTransportUnavailable, http.StatusBadGateway},
		{subsonic.ErrDecode, http.StatusBadGateway},
		{&subsonic.SubsonicError{Code: 40, Message: "Wrong username or password"}, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			a := newReadyApp(t, &fakeSource{err: tc.err})

			rec := get(a, "/resolve?id=song/s-1")
			assert.Equal(t, tc.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.err.Error(), body["error"])
			assert.NotEmpty(t, body["request_id"])

			rec = get(a, "/ui?id=album/7")
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestUI(t *testing.T) {
	source := &fakeSource{}
	a := newReadyApp(t, source)

	rec := get(a, "/ui?id=album%2F7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Kind of Blue</h1>")
	assert.Contains(t, rec.Body.String(), `href="/resolve?id=song%2Fs-1"`)

	rec = get(a, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"album/7", ""}, source.ids)
}

func TestRequestID(t *testing.T) {
	a := newReadyApp(t, &fakeSource{})

	rec := get(a, "/healthz")
	_, err := uuid.Parse(rec.Header().Get(app.RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(app.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(app.RequestIDHeader))
}

func TestGetRequestIDOutsideMiddleware(t *testing.T) {
	assert.Empty(t, app.GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestCORS(t *testing.T) {
	log := zerolog.Nop()
	a := app.NewApp(&log, &fakePinger{ok: true}, &fakeSource{}, app.Options{
		CORSOrigins: []string{"https://*.example.com"},
	})
	require.NoError(t, a.Setup(context.Background()))

	req := httptest.NewRequest(http.MethodGet, "/browse", nil)
	req.Header.Set("Origin", "https://ha.example.com")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://ha.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/browse", nil)
	req.Header.Set("Origin", "https://evil.test")
	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverer(t *testing.T) {
	a := newReadyApp(t, &fakeSource{panic: true})

	rec := get(a, "/browse?id=album/7")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
