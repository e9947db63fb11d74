package catalog_test

import (
	"context"
	"errors"
	"sync"

	"github.com/sublime-music/subsonic-source/pkg/subsonic"
)

var errBoom = errors.New("boom")

// fakeLibrary is an in-memory library which records the calls made to it.
type fakeLibrary struct {
	artists   []subsonic.Record
	artist    map[subsonic.SubsonicID]subsonic.Record
	albums    []subsonic.Record
	album     map[subsonic.SubsonicID]subsonic.Record
	playlists []subsonic.Record
	playlist  map[subsonic.SubsonicID]subsonic.Record
	genres    []string
	byGenre   map[string][]subsonic.Record
	songs     map[subsonic.SubsonicID]subsonic.Record
	radios    []subsonic.Record

	err error

	mu    sync.Mutex
	calls []string
}

func (f *fakeLibrary) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeLibrary) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeLibrary) GetArtists(ctx context.Context) ([]subsonic.Record, error) {
	if err := f.record("getArtists"); err != nil {
		return nil, err
	}
	return f.artists, nil
}

func (f *fakeLibrary) GetArtist(ctx context.Context, id subsonic.SubsonicID) (subsonic.Record, error) {
	if err := f.record("getArtist/" + id.String()); err != nil {
		return subsonic.Record{}, err
	}
	return f.artist[id], nil
}

func (f *fakeLibrary) GetAlbumList2(ctx context.Context, req subsonic.ReqGetAlbumList) ([]subsonic.Record, error) {
	if err := f.record("getAlbumList2/" + string(req.Type)); err != nil {
		return nil, err
	}
	return f.albums, nil
}

func (f *fakeLibrary) GetAlbum(ctx context.Context, id subsonic.SubsonicID) (subsonic.Record, error) {
	if err := f.record("getAlbum/" + id.String()); err != nil {
		return subsonic.Record{}, err
	}
	return f.album[id], nil
}

func (f *fakeLibrary) GetPlaylists(ctx context.Context) ([]subsonic.Record, error) {
	if err := f.record("getPlaylists"); err != nil {
		return nil, err
	}
	return f.playlists, nil
}

func (f *fakeLibrary) GetPlaylist(ctx context.Context, id subsonic.SubsonicID) (subsonic.Record, error) {
	if err := f.record("getPlaylist/" + id.String()); err != nil {
		return subsonic.Record{}, err
	}
	return f.playlist[id], nil
}

func (f *fakeLibrary) GetGenres(ctx context.Context) ([]string, error) {
	if err := f.record("getGenres"); err != nil {
		return nil, err
	}
	return f.genres, nil
}

func (f *fakeLibrary) GetSongsByGenre(ctx context.Context, req subsonic.ReqGetSongsByGenre) ([]subsonic.Record, error) {
	if err := f.record("getSongsByGenre/" + req.Genre); err != nil {
		return nil, err
	}
	return f.byGenre[req.Genre], nil
}

func (f *fakeLibrary) GetSong(ctx context.Context, id subsonic.SubsonicID) (subsonic.Record, error) {
	if err := f.record("getSong/" + id.String()); err != nil {
		return subsonic.Record{}, err
	}
	song, ok := f.songs[id]
	if !ok {
		return subsonic.Record{}, &subsonic.SubsonicError{Code: 70, Message: "Song not found"}
	}
	return song, nil
}

func (f *fakeLibrary) GetInternetRadioStations(ctx context.Context) ([]subsonic.Record, error) {
	if err := f.record("getInternetRadioStations"); err != nil {
		return nil, err
	}
	return f.radios, nil
}

func (f *fakeLibrary) StreamURL(id subsonic.SubsonicID) string {
	return "https://music.example.com/rest/stream.view?id=" + id.String()
}

func (f *fakeLibrary) CoverArtURL(id subsonic.SubsonicID) string {
	return "https://music.example.com/rest/getCoverArt.view?id=" + id.String()
}

func rec(attrs map[string]string, children ...subsonic.Record) subsonic.Record {
	r := subsonic.NewRecord(attrs)
	r.Children = children
	return r
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		artists: []subsonic.Record{
			rec(map[string]string{"id": "ar-1", "name": "ABBA", "coverArt": "ar-ar-1"}),
			rec(map[string]string{"id": "ar-2", "name": "Miles Davis", "coverArt": ""}),
		},
		artist: map[subsonic.SubsonicID]subsonic.Record{
			"ar-2": rec(map[string]string{"id": "ar-2", "name": "Miles Davis", "coverArt": "ar-ar-2"},
				rec(map[string]string{"id": "7", "name": "Kind of Blue"}),
				rec(map[string]string{"id": "al-2", "name": "Bitches Brew", "coverArt": "al-al-2"}),
			),
		},
		albums: []subsonic.Record{
			rec(map[string]string{"id": "al-2", "name": "Bitches Brew", "coverArt": "al-al-2"}),
			rec(map[string]string{"id": "7", "name": "Kind of Blue"}),
		},
		album: map[subsonic.SubsonicID]subsonic.Record{
			"7": rec(map[string]string{"id": "7", "name": "Kind of Blue"},
				rec(map[string]string{"id": "s-1", "title": "So What", "coverArt": "al-7"}),
				rec(map[string]string{"id": "s-2", "title": "Freddie Freeloader"}),
			),
			"al-2": rec(map[string]string{"id": "al-2", "name": "Bitches Brew", "coverArt": "al-al-2"},
				rec(map[string]string{"id": "s-5", "title": "Pharaoh's Dance"}),
			),
		},
		playlists: []subsonic.Record{
			rec(map[string]string{"id": "pl-1", "name": "Sunday", "coverArt": "pl-pl-1"}),
		},
		playlist: map[subsonic.SubsonicID]subsonic.Record{
			"pl-1": rec(map[string]string{"id": "pl-1", "name": "Sunday", "coverArt": "pl-pl-1"},
				rec(map[string]string{"id": "s-9", "title": "Blue in Green", "coverArt": "al-7"}),
			),
		},
		genres: []string{"Rock", "Jazz", ""},
		byGenre: map[string][]subsonic.Record{
			"Rock": {
				rec(map[string]string{"id": "s-3", "title": "Paranoid", "coverArt": "al-al-9"}),
				rec(map[string]string{"id": "s-4", "title": "Iron Man"}),
			},
			"Jazz": {
				rec(map[string]string{"id": "s-1", "title": "So What"}),
			},
		},
		songs: map[subsonic.SubsonicID]subsonic.Record{
			"s-1": rec(map[string]string{"id": "s-1", "title": "So What", "contentType": "audio/flac"}),
			"s-2": rec(map[string]string{"id": "s-2", "title": "Freddie Freeloader"}),
		},
		radios: []subsonic.Record{
			rec(map[string]string{"id": "r-1", "name": "FIP", "streamUrl": "https://icecast.radiofrance.fr/fip-hifi.aac"}),
			rec(map[string]string{"id": "r-2", "name": "Broken"}),
		},
	}
}
