package subsonic

import (
	"context"
	"net/url"
)

// listRecords performs op and decodes every element named tag.
func (c *Client) listRecords(ctx context.Context, op string, params url.Values, tag string) ([]Record, error) {
	doc, err := c.getXML(ctx, op, params)
	if err != nil {
		return nil, err
	}
	all, err := AllAttributes(doc, tag)
	if err != nil {
		return nil, err
	}
	return newRecords(all), nil
}

// getRecord performs op for id and decodes the first element named tag. If
// childTag is not empty, every element named childTag is attached as the
// record's children.
func (c *Client) getRecord(ctx context.Context, op string, id SubsonicID, tag, childTag string) (Record, error) {
	doc, err := c.getXML(ctx, op, url.Values{
		"id": {id.String()},
	})
	if err != nil {
		return Record{}, err
	}
	attrs, err := FirstAttributes(doc, tag)
	if err != nil {
		return Record{}, err
	}
	record := NewRecord(attrs)
	if childTag != "" {
		children, err := AllAttributes(doc, childTag)
		if err != nil {
			return Record{}, err
		}
		record.Children = newRecords(children)
	}
	return record, nil
}

// GetGenres returns the names of all genres in server order. Genres without
// a name are kept as empty strings.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getGenres
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getgenres/
func (c *Client) GetGenres(ctx context.Context) ([]string, error) {
	doc, err := c.getXML(ctx, "getGenres", nil)
	if err != nil {
		return nil, err
	}
	return Texts(doc, "genre")
}

// GetArtists returns all artists, organized according to ID3 tags. The index
// grouping of the response is flattened.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getArtists
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getartists/
func (c *Client) GetArtists(ctx context.Context) ([]Record, error) {
	return c.listRecords(ctx, "getArtists", nil, "artist")
}

// GetArtist returns details for an artist with its albums as children.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getArtist
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getartist/
func (c *Client) GetArtist(ctx context.Context, id SubsonicID) (Record, error) {
	return c.getRecord(ctx, "getArtist", id, "artist", "album")
}

// GetAlbum returns details for an album with its songs as children.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getAlbum
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getalbum/
func (c *Client) GetAlbum(ctx context.Context, id SubsonicID) (Record, error) {
	return c.getRecord(ctx, "getAlbum", id, "album", "song")
}

// GetSong returns details for a song. The record is empty if the server did
// not return a song element.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getSong
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getsong/
func (c *Client) GetSong(ctx context.Context, id SubsonicID) (Record, error) {
	return c.getRecord(ctx, "getSong", id, "song", "")
}
