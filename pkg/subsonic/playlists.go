package subsonic

import (
	"context"
)

// GetPlaylists returns all playlists the user is allowed to play.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getPlaylists
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getplaylists/
func (c *Client) GetPlaylists(ctx context.Context) ([]Record, error) {
	return c.listRecords(ctx, "getPlaylists", nil, "playlist")
}

// GetPlaylist returns a saved playlist with its entries as children.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getPlaylist
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getplaylist/
func (c *Client) GetPlaylist(ctx context.Context, id SubsonicID) (Record, error) {
	return c.getRecord(ctx, "getPlaylist", id, "playlist", "entry")
}
