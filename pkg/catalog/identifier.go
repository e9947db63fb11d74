package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotResolvable is returned for identifiers that do not name anything this
// source can browse or play.
var ErrNotResolvable = errors.New("identifier is not resolvable")

// Kind is the variant of an [Identifier].
type Kind int

const (
	KindRoot Kind = iota
	KindSection
	KindAlbum
	KindPlaylist
	KindGenre
	KindArtist
	KindSong
	KindRadio
)

var kindPrefixes = map[Kind]string{
	KindSection:  "browser",
	KindAlbum:    "album",
	KindPlaylist: "playlist",
	KindGenre:    "genre",
	KindArtist:   "artist",
	KindSong:     "song",
	KindRadio:    "radio",
}

var prefixKinds = func() map[string]Kind {
	kinds := make(map[string]Kind, len(kindPrefixes))
	for kind, prefix := range kindPrefixes {
		kinds[prefix] = kind
	}
	return kinds
}()

func (k Kind) String() string {
	if k == KindRoot {
		return "root"
	} else if prefix, ok := kindPrefixes[k]; ok {
		return prefix
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Section is a top level listing of the catalog.
type Section string

// The section names are part of the identifier wire format and must not
// change.
const (
	SectionArtists   Section = "artists"
	SectionAlbums    Section = "albums"
	SectionPlaylists Section = "playlist"
	SectionRadio     Section = "radio"
	SectionGenres    Section = "genres"
)

// Identifier names a node of the catalog. Its string form is "" for the root
// and "<kind>/<id>" otherwise, with "browser" as the kind of sections.
type Identifier struct {
	Kind Kind
	ID   string
}

func NewIdentifier(kind Kind, id string) Identifier {
	return Identifier{Kind: kind, ID: id}
}

func SectionIdentifier(section Section) Identifier {
	return Identifier{Kind: KindSection, ID: string(section)}
}

// ParseIdentifier parses the string form of an identifier. Only the prefix is
// validated: the id is everything after the first slash and may itself
// contain slashes or be empty.
func ParseIdentifier(s string) (Identifier, error) {
	if s == "" {
		return Identifier{Kind: KindRoot}, nil
	}
	prefix, id, ok := strings.Cut(s, "/")
	if !ok {
		return Identifier{}, fmt.Errorf("%w: %q has no kind prefix", ErrNotResolvable, s)
	}
	kind, ok := prefixKinds[prefix]
	if !ok {
		return Identifier{}, fmt.Errorf("%w: unknown kind %q", ErrNotResolvable, prefix)
	}
	return Identifier{Kind: kind, ID: id}, nil
}

func (i Identifier) String() string {
	if i.Kind == KindRoot {
		return ""
	}
	return kindPrefixes[i.Kind] + "/" + i.ID
}

// MarshalText implements [encoding.TextMarshaler].
func (i Identifier) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (i *Identifier) UnmarshalText(b []byte) error {
	parsed, err := ParseIdentifier(string(b))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
