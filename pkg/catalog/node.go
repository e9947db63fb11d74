package catalog

// MediaClass describes how the host should present a node.
type MediaClass string

const (
	MediaClassChannel   MediaClass = "channel"
	MediaClassDirectory MediaClass = "directory"
	MediaClassArtist    MediaClass = "artist"
	MediaClassAlbum     MediaClass = "album"
	MediaClassPlaylist  MediaClass = "playlist"
	MediaClassGenre     MediaClass = "genre"
	MediaClassMusic     MediaClass = "music"
)

// MediaType is the content type the host should expect when playing a node.
type MediaType string

const (
	MediaTypeMusic    MediaType = "music"
	MediaTypeAlbum    MediaType = "album"
	MediaTypePlaylist MediaType = "playlist"
)

// DefaultMimeType is used for songs without a content type and for radio
// stations.
const DefaultMimeType = "audio/mpeg"

// Node is one browsable unit of the catalog.
//
// A node is either a leaf (playable, no children) or a container
// (expandable, never playable).
type Node struct {
	Identifier Identifier `json:"identifier"`
	Title      string     `json:"title"`
	MediaClass MediaClass `json:"media_class"`
	MediaType  MediaType  `json:"media_content_type"`
	CanPlay    bool       `json:"can_play"`
	CanExpand  bool       `json:"can_expand"`
	// Thumbnail is a cover art URL. It is nil when the entity has no cover
	// art.
	Thumbnail *string `json:"thumbnail,omitempty"`

	ChildrenMediaClass MediaClass `json:"children_media_class,omitempty"`
	Children           []Node     `json:"children"`
}

// PlayMedia is a resolved, playable URL.
type PlayMedia struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}
