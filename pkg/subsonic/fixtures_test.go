package subsonic_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sublime-music/subsonic-source/pkg/subsonic"
)

const (
	pingOK = `<?xml version="1.0" encoding="UTF-8"?>
<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1" type="navidrome" serverVersion="0.52.5"></subsonic-response>`

	pingFailed = `<?xml version="1.0" encoding="UTF-8"?>
<subsonic-response xmlns="http://subsonic.org/restapi" status="failed" version="1.16.1">
  <error code="40" message="Wrong username or password"></error>
</subsonic-response>`

	pingNoStatus = `<subsonic-response xmlns="http://subsonic.org/restapi" version="1.16.1"></subsonic-response>`

	artistsXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">
  <artists ignoredArticles="The El La Los Las Le Les">
    <index name="A">
      <artist id="ar-1" name="ABBA" coverArt="ar-ar-1" albumCount="2"></artist>
    </index>
    <index name="M">
      <artist id="ar-2" name="Miles Davis" albumCount="5"></artist>
    </index>
  </artists>
</subsonic-response>`

	artistXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">
  <artist id="ar-2" name="Miles Davis" coverArt="ar-ar-2" albumCount="2">
    <album id="al-1" name="Kind of Blue" coverArt="al-al-1" songCount="5"></album>
    <album id="al-2" name="Bitches Brew" songCount="6"></album>
  </artist>
</subsonic-response>`

	albumXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">
  <album id="7" name="Kind of Blue" artist="Miles Davis" songCount="2">
    <song id="s-1" title="So What" contentType="audio/flac" suffix="flac"></song>
    <song id="s-2" title="Freddie Freeloader" contentType="audio/mpeg"></song>
  </album>
</subsonic-response>`

	albumListXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">
  <albumList2>
    <album id="al-2" name="Bitches Brew"></album>
    <album id="al-1" name="Kind of Blue" coverArt="al-al-1"></album>
  </albumList2>
</subsonic-response>`

	playlistXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">
  <playlist id="pl-1" name="Sunday" coverArt="pl-pl-1" songCount="1">
    <entry id="s-9" title="Blue in Green" coverArt="al-al-1"></entry>
  </playlist>
</subsonic-response>`

	genresXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">
  <genres>
    <genre songCount="10" albumCount="2">Rock</genre>
    <genre songCount="3" albumCount="1">Jazz</genre>
    <genre songCount="1" albumCount="1"></genre>
  </genres>
</subsonic-response>`

	songsByGenreXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">
  <songsByGenre>
    <song id="s-3" title="Paranoid" coverArt="al-al-9"></song>
    <song id="s-4" title="Iron Man"></song>
  </songsByGenre>
</subsonic-response>`

	radioXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="ok" version="1.16.1">
  <internetRadioStations>
    <internetRadioStation id="r-1" name="FIP" streamUrl="https://icecast.radiofrance.fr/fip-hifi.aac"></internetRadioStation>
    <internetRadioStation id="r-2" name="KEXP" streamUrl="https://kexp.streamguys1.com/kexp160.aac" homePageUrl="https://kexp.org"></internetRadioStation>
  </internetRadioStations>
</subsonic-response>`

	notFoundXML = `<subsonic-response xmlns="http://subsonic.org/restapi" status="failed" version="1.16.1">
  <error code="70" message="Album not found"></error>
</subsonic-response>`
)

// fakeServer serves canned XML bodies keyed by operation name and records
// the query of every request.
type fakeServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries map[string][]url.Values
}

func newFakeServer(t *testing.T, bodies map[string]string) *fakeServer {
	t.Helper()
	fs := &fakeServer{queries: map[string][]url.Values{}}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/rest/"), ".view")
		fs.mu.Lock()
		fs.queries[op] = append(fs.queries[op], r.URL.Query())
		fs.mu.Unlock()

		body, ok := bodies[op]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) lastQuery(op string) url.Values {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	queries := fs.queries[op]
	if len(queries) == 0 {
		return nil
	}
	return queries[len(queries)-1]
}

func newTestClient(t *testing.T, serverURL string) *subsonic.Client {
	t.Helper()
	client, err := subsonic.NewClient(subsonic.Config{
		URL:      serverURL,
		Username: "alice",
		Password: "sesame",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}
