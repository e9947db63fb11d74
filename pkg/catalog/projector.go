package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sublime-music/subsonic-source/pkg/subsonic"
)

// RootThumbnail is the artwork of the root node.
const RootThumbnail = "https://avatars.githubusercontent.com/u/26692192?s=256"

// Library is the part of [subsonic.Client] the projector needs.
type Library interface {
	GetArtists(ctx context.Context) ([]subsonic.Record, error)
	GetArtist(ctx context.Context, id subsonic.SubsonicID) (subsonic.Record, error)
	GetAlbumList2(ctx context.Context, req subsonic.ReqGetAlbumList) ([]subsonic.Record, error)
	GetAlbum(ctx context.Context, id subsonic.SubsonicID) (subsonic.Record, error)
	GetPlaylists(ctx context.Context) ([]subsonic.Record, error)
	GetPlaylist(ctx context.Context, id subsonic.SubsonicID) (subsonic.Record, error)
	GetGenres(ctx context.Context) ([]string, error)
	GetSongsByGenre(ctx context.Context, req subsonic.ReqGetSongsByGenre) ([]subsonic.Record, error)
	GetSong(ctx context.Context, id subsonic.SubsonicID) (subsonic.Record, error)
	GetInternetRadioStations(ctx context.Context) ([]subsonic.Record, error)
	StreamURL(id subsonic.SubsonicID) string
	CoverArtURL(id subsonic.SubsonicID) string
}

// Settings selects which sections are listed at the root.
type Settings struct {
	Artists   bool
	Albums    bool
	Playlists bool
	Genres    bool
	Radio     bool
}

// DefaultSettings enables every section except radio.
func DefaultSettings() Settings {
	return Settings{
		Artists:   true,
		Albums:    true,
		Playlists: true,
		Genres:    true,
		Radio:     false,
	}
}

type Options struct {
	// Title is the title of the root node.
	Title    string
	Language string
	Settings Settings
}

// Projector presents a Subsonic library as a tree of [Node]s.
type Projector struct {
	library  Library
	title    string
	language string
	settings Settings
}

func NewProjector(library Library, opts Options) *Projector {
	title := opts.Title
	if title == "" {
		title = "Subsonic"
	}
	return &Projector{
		library:  library,
		title:    title,
		language: opts.Language,
		settings: opts.Settings,
	}
}

func (p *Projector) translate(key string) string {
	return Translate(p.language, key)
}

// Browse returns the node named by identifier with its children.
//
// Identifiers which cannot be browsed fall back to the root listing.
func (p *Projector) Browse(ctx context.Context, identifier string) (*Node, error) {
	log := zerolog.Ctx(ctx)

	id, err := ParseIdentifier(identifier)
	if err != nil {
		log.Debug().Err(err).Str("identifier", identifier).Msg("Unknown identifier, showing root")
		return p.root(), nil
	}

	switch id.Kind {
	case KindRoot:
		return p.root(), nil
	case KindSection:
		return p.section(ctx, Section(id.ID))
	case KindAlbum:
		return p.album(ctx, subsonic.SubsonicID(id.ID))
	case KindPlaylist:
		return p.playlist(ctx, subsonic.SubsonicID(id.ID))
	case KindGenre:
		return p.genre(ctx, id.ID)
	case KindArtist:
		return p.artist(ctx, subsonic.SubsonicID(id.ID))
	default:
		log.Debug().Str("identifier", identifier).Msg("Identifier is not browsable, showing root")
		return p.root(), nil
	}
}

// Resolve returns the playable URL of a song or radio station.
func (p *Projector) Resolve(ctx context.Context, identifier string) (*PlayMedia, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	switch id.Kind {
	case KindSong:
		return p.resolveSong(ctx, subsonic.SubsonicID(id.ID))
	case KindRadio:
		return p.resolveRadio(ctx, id.ID)
	default:
		return nil, fmt.Errorf("%w: can't resolve %q", ErrNotResolvable, identifier)
	}
}

func (p *Projector) resolveSong(ctx context.Context, id subsonic.SubsonicID) (*PlayMedia, error) {
	song, err := p.library.GetSong(ctx, id)
	if errors.Is(err, subsonic.ErrDataNotFound) {
		return nil, fmt.Errorf("%w: song %s: %w", ErrNotResolvable, id, err)
	} else if err != nil {
		return nil, err
	} else if song.IsZero() {
		return nil, fmt.Errorf("%w: song %s missing from response", ErrNotResolvable, id)
	}

	mimeType := DefaultMimeType
	if contentType, ok := song.Get(subsonic.AttrContentType); ok && contentType != "" {
		mimeType = contentType
	}
	return &PlayMedia{
		URL:      p.library.StreamURL(id),
		MimeType: mimeType,
	}, nil
}

func (p *Projector) resolveRadio(ctx context.Context, id string) (*PlayMedia, error) {
	stations, err := p.library.GetInternetRadioStations(ctx)
	if err != nil {
		return nil, err
	}
	for _, station := range stations {
		if station.ID().String() != id {
			continue
		}
		streamURL := station.String(subsonic.AttrStreamURL)
		if streamURL == "" {
			return nil, fmt.Errorf("%w: radio %s has no stream URL", ErrNotResolvable, id)
		}
		return &PlayMedia{URL: streamURL, MimeType: DefaultMimeType}, nil
	}
	return nil, fmt.Errorf("%w: radio %s not found", ErrNotResolvable, id)
}

func (p *Projector) root() *Node {
	sections := []struct {
		enabled bool
		section Section
		title   string
	}{
		{p.settings.Artists, SectionArtists, TitleArtists},
		{p.settings.Albums, SectionAlbums, TitleAlbums},
		{p.settings.Playlists, SectionPlaylists, TitlePlaylists},
		{p.settings.Radio, SectionRadio, TitleRadios},
		{p.settings.Genres, SectionGenres, TitleGenres},
	}

	children := []Node{}
	for _, s := range sections {
		if !s.enabled {
			continue
		}
		children = append(children, Node{
			Identifier: SectionIdentifier(s.section),
			Title:      p.translate(s.title),
			MediaClass: MediaClassDirectory,
			MediaType:  MediaTypeMusic,
			CanExpand:  true,
		})
	}

	thumbnail := RootThumbnail
	return &Node{
		Identifier:         Identifier{Kind: KindRoot},
		Title:              p.title,
		MediaClass:         MediaClassChannel,
		MediaType:          MediaTypeMusic,
		CanExpand:          true,
		Thumbnail:          &thumbnail,
		ChildrenMediaClass: MediaClassDirectory,
		Children:           children,
	}
}

func (p *Projector) section(ctx context.Context, section Section) (*Node, error) {
	var title string
	var childClass MediaClass
	var children []Node
	var err error

	switch section {
	case SectionArtists:
		title, childClass = TitleArtists, MediaClassArtist
		children, err = p.listArtists(ctx)
	case SectionAlbums:
		title, childClass = TitleAlbums, MediaClassAlbum
		children, err = p.listAlbums(ctx)
	case SectionPlaylists:
		title, childClass = TitlePlaylists, MediaClassPlaylist
		children, err = p.listPlaylists(ctx)
	case SectionRadio:
		title, childClass = TitleRadios, MediaClassMusic
		children, err = p.listRadios(ctx)
	case SectionGenres:
		title, childClass = TitleGenres, MediaClassGenre
		children, err = p.listGenres(ctx)
	default:
		zerolog.Ctx(ctx).Debug().Str("section", string(section)).Msg("Unknown section, showing root")
		return p.root(), nil
	}
	if err != nil {
		return nil, err
	}

	return &Node{
		Identifier:         SectionIdentifier(section),
		Title:              p.translate(title),
		MediaClass:         MediaClassDirectory,
		MediaType:          MediaTypeMusic,
		CanExpand:          true,
		ChildrenMediaClass: childClass,
		Children:           children,
	}, nil
}

func (p *Projector) listArtists(ctx context.Context) ([]Node, error) {
	artists, err := p.library.GetArtists(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(artists))
	for _, artist := range artists {
		nodes = append(nodes, p.artistNode(artist))
	}
	return nodes, nil
}

func (p *Projector) listAlbums(ctx context.Context) ([]Node, error) {
	albums, err := p.library.GetAlbumList2(ctx, subsonic.ReqGetAlbumList{
		Type: subsonic.AlbumListTypeAlphabeticalByName,
	})
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(albums))
	for _, album := range albums {
		nodes = append(nodes, p.albumNode(album))
	}
	return nodes, nil
}

func (p *Projector) listPlaylists(ctx context.Context) ([]Node, error) {
	playlists, err := p.library.GetPlaylists(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(playlists))
	for _, playlist := range playlists {
		nodes = append(nodes, p.playlistNode(playlist))
	}
	return nodes, nil
}

func (p *Projector) listRadios(ctx context.Context) ([]Node, error) {
	stations, err := p.library.GetInternetRadioStations(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(stations))
	for _, station := range stations {
		id := NewIdentifier(KindRadio, station.ID().String())
		nodes = append(nodes, Node{
			Identifier: id,
			Title:      title(station, subsonic.AttrName, id.ID),
			MediaClass: MediaClassMusic,
			MediaType:  MediaTypeMusic,
			CanPlay:    true,
		})
	}
	return nodes, nil
}

func (p *Projector) listGenres(ctx context.Context) ([]Node, error) {
	genres, err := p.library.GetGenres(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(genres))
	for _, genre := range genres {
		nodes = append(nodes, Node{
			Identifier: NewIdentifier(KindGenre, genre),
			Title:      genre,
			MediaClass: MediaClassGenre,
			MediaType:  MediaTypeMusic,
			CanExpand:  true,
		})
	}
	return nodes, nil
}

func (p *Projector) album(ctx context.Context, id subsonic.SubsonicID) (*Node, error) {
	album, err := p.library.GetAlbum(ctx, id)
	if err != nil {
		return nil, err
	}
	node := p.albumNode(album)
	node.Identifier = NewIdentifier(KindAlbum, id.String())
	node.Title = title(album, subsonic.AttrName, id.String())
	node.ChildrenMediaClass = MediaClassMusic
	node.Children = p.songNodes(album.Children, node.Thumbnail)
	return &node, nil
}

func (p *Projector) playlist(ctx context.Context, id subsonic.SubsonicID) (*Node, error) {
	playlist, err := p.library.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	node := p.playlistNode(playlist)
	node.Identifier = NewIdentifier(KindPlaylist, id.String())
	node.Title = title(playlist, subsonic.AttrName, id.String())
	node.ChildrenMediaClass = MediaClassMusic
	node.Children = p.songNodes(playlist.Children, node.Thumbnail)
	return &node, nil
}

func (p *Projector) genre(ctx context.Context, genre string) (*Node, error) {
	songs, err := p.library.GetSongsByGenre(ctx, subsonic.ReqGetSongsByGenre{Genre: genre})
	if err != nil {
		return nil, err
	}
	children := make([]Node, 0, len(songs))
	for _, song := range songs {
		children = append(children, p.songNode(song, p.thumbnail(song)))
	}
	return &Node{
		Identifier:         NewIdentifier(KindGenre, genre),
		Title:              genre,
		MediaClass:         MediaClassGenre,
		MediaType:          MediaTypeMusic,
		CanExpand:          true,
		ChildrenMediaClass: MediaClassMusic,
		Children:           children,
	}, nil
}

func (p *Projector) artist(ctx context.Context, id subsonic.SubsonicID) (*Node, error) {
	artist, err := p.library.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	node := p.artistNode(artist)
	node.Identifier = NewIdentifier(KindArtist, id.String())
	node.Title = title(artist, subsonic.AttrName, id.String())
	node.ChildrenMediaClass = MediaClassAlbum
	node.Children = make([]Node, 0, len(artist.Children))
	for _, album := range artist.Children {
		node.Children = append(node.Children, p.albumNode(album))
	}
	return &node, nil
}

func (p *Projector) artistNode(artist subsonic.Record) Node {
	id := NewIdentifier(KindArtist, artist.ID().String())
	return Node{
		Identifier: id,
		Title:      title(artist, subsonic.AttrName, id.ID),
		MediaClass: MediaClassArtist,
		MediaType:  MediaTypeMusic,
		CanExpand:  true,
		Thumbnail:  p.thumbnail(artist),
	}
}

func (p *Projector) albumNode(album subsonic.Record) Node {
	id := NewIdentifier(KindAlbum, album.ID().String())
	return Node{
		Identifier: id,
		Title:      title(album, subsonic.AttrName, id.ID),
		MediaClass: MediaClassAlbum,
		MediaType:  MediaTypeAlbum,
		CanExpand:  true,
		Thumbnail:  p.thumbnail(album),
	}
}

func (p *Projector) playlistNode(playlist subsonic.Record) Node {
	id := NewIdentifier(KindPlaylist, playlist.ID().String())
	return Node{
		Identifier: id,
		Title:      title(playlist, subsonic.AttrName, id.ID),
		MediaClass: MediaClassPlaylist,
		MediaType:  MediaTypePlaylist,
		CanExpand:  true,
		Thumbnail:  p.thumbnail(playlist),
	}
}

// songNodes builds the children of an album or playlist. Songs share the
// cover of their parent.
func (p *Projector) songNodes(songs []subsonic.Record, thumbnail *string) []Node {
	nodes := make([]Node, 0, len(songs))
	for _, song := range songs {
		nodes = append(nodes, p.songNode(song, thumbnail))
	}
	return nodes
}

func (p *Projector) songNode(song subsonic.Record, thumbnail *string) Node {
	id := NewIdentifier(KindSong, song.ID().String())
	return Node{
		Identifier: id,
		Title:      title(song, subsonic.AttrTitle, id.ID),
		MediaClass: MediaClassMusic,
		MediaType:  MediaTypeMusic,
		CanPlay:    true,
		Thumbnail:  thumbnail,
	}
}

// thumbnail returns the cover art URL of record, or nil if it has none.
func (p *Projector) thumbnail(record subsonic.Record) *string {
	coverArt, ok := record.CoverArt()
	if !ok {
		return nil
	}
	coverURL := p.library.CoverArtURL(coverArt)
	return &coverURL
}

func title(record subsonic.Record, key, fallback string) string {
	if val, ok := record.Get(key); ok {
		return val
	}
	return fallback
}
