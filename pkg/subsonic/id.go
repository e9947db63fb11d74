package subsonic

// SubsonicID identifies an object of one kind on the server. IDs are only
// unique within their kind.
type SubsonicID string

func (id SubsonicID) String() string {
	return string(id)
}
