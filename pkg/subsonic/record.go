package subsonic

// Attribute names shared by several entity kinds.
const (
	AttrID          = "id"
	AttrName        = "name"
	AttrTitle       = "title"
	AttrCoverArt    = "coverArt"
	AttrContentType = "contentType"
	AttrStreamURL   = "streamUrl"
)

// Record is one decoded XML element: its attributes and, for albums,
// playlists and artists, the nested elements returned with it.
type Record struct {
	attrs map[string]string

	// Children holds the songs of an album or playlist, or the albums of an
	// artist.
	Children []Record
}

func NewRecord(attrs map[string]string) Record {
	return Record{attrs: attrs}
}

func newRecords(all []map[string]string) []Record {
	records := make([]Record, len(all))
	for i, attrs := range all {
		records[i] = NewRecord(attrs)
	}
	return records
}

// Get returns the value of the named attribute and whether it was present.
func (r Record) Get(key string) (string, bool) {
	val, ok := r.attrs[key]
	return val, ok
}

// String returns the value of the named attribute, or "" if it is absent.
func (r Record) String(key string) string {
	return r.attrs[key]
}

func (r Record) ID() SubsonicID {
	return SubsonicID(r.attrs[AttrID])
}

// CoverArt returns the cover art reference of the record. Missing and empty
// references are both reported as absent.
func (r Record) CoverArt() (SubsonicID, bool) {
	val := r.attrs[AttrCoverArt]
	return SubsonicID(val), val != ""
}

// IsZero reports whether the record has no attributes, which is the case when
// the requested element was not in the response.
func (r Record) IsZero() bool {
	return len(r.attrs) == 0
}
