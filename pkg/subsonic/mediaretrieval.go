package subsonic

// ReqStream is the arguments to [Client.StreamURLFor].
type ReqStream struct {
	// ID is a string which uniquely identifies the file to stream. Obtained
	// by calls to getMusicDirectory.
	ID SubsonicID `url:"id"`

	// MaxBitRate, if specified, the server will attempt to limit the bitrate
	// to this value, in kilobits per second. If set to zero, no limit is
	// imposed.
	MaxBitRate *int `url:"maxBitRate,omitempty"`

	// Format specifies the preferred target format (e.g., "mp3" or "flv") in
	// case there are multiple applicable transcodings. "raw" disables
	// transcoding.
	Format *string `url:"format,omitempty"`
}

// ReqGetCoverArt is the arguments to [Client.CoverArtURLFor].
type ReqGetCoverArt struct {
	// ID is the ID of a song, album or artist.
	ID SubsonicID `url:"id"`

	// Size, if specified, scales the image to this size.
	Size *int `url:"size,omitempty"`
}

// StreamURLFor returns a URL which streams the given media file. The URL
// carries a fresh salt and token so it can be handed to a player as is.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#stream
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/stream/
func (c *Client) StreamURLFor(req ReqStream) (string, error) {
	params, err := MarshalValues(req)
	if err != nil {
		return "", err
	}
	return c.signedURL("stream", params), nil
}

// CoverArtURLFor returns a URL for the cover art with the given ID.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getCoverArt
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getcoverart/
func (c *Client) CoverArtURLFor(req ReqGetCoverArt) (string, error) {
	params, err := MarshalValues(req)
	if err != nil {
		return "", err
	}
	return c.signedURL("getCoverArt", params), nil
}

// StreamURL is [Client.StreamURLFor] with only the ID set.
func (c *Client) StreamURL(id SubsonicID) string {
	// A ReqStream always marshals.
	u, _ := c.StreamURLFor(ReqStream{ID: id})
	return u
}

// CoverArtURL is [Client.CoverArtURLFor] at the original size.
func (c *Client) CoverArtURL(id SubsonicID) string {
	u, _ := c.CoverArtURLFor(ReqGetCoverArt{ID: id})
	return u
}
