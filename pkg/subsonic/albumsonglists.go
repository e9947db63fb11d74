package subsonic

import (
	"context"
)

type AlbumListType string

const (
	AlbumListTypeRandom               AlbumListType = "random"
	AlbumListTypeNewest               AlbumListType = "newest"
	AlbumListTypeHighest              AlbumListType = "highest"
	AlbumListTypeFrequest             AlbumListType = "frequent"
	AlbumListTypeRecent               AlbumListType = "recent"
	AlbumListTypeAlphabeticalByName   AlbumListType = "alphabeticalByName"   // Added in 1.8.0
	AlbumListTypeAlphabeticalByArtist AlbumListType = "alphabeticalByArtist" // Added in 1.8.0
	AlbumListTypeStarred              AlbumListType = "starred"              // Added in 1.8.0
	AlbumListTypeByYear               AlbumListType = "byYear"               // Added in 1.10.1
	AlbumListTypeByGenre              AlbumListType = "byGenre"              // Added in 1.10.1
)

// ReqGetAlbumList is the arguments to [Client.GetAlbumList2].
type ReqGetAlbumList struct {
	// Type is the list type.
	Type AlbumListType `url:"type"`
	// Size is the number of albums to return. Max 500.
	Size *int `url:"size,omitempty"`
	// Offset is the list offset. Useful if you for example want to page
	// through the list of newest albums.
	Offset *int `url:"offset,omitempty"`
	// Genre is the name of the genre, e.g., "Rock". Only used with
	// [AlbumListTypeByGenre].
	Genre *string `url:"genre,omitempty"`
	// MusicFolderID restricts the server to return albums in the music folder
	// with the given ID. Added in 1.11.0.
	MusicFolderID *SubsonicID `url:"musicFolderId,omitempty"`
}

// GetAlbumList2 returns a list of random, newest, highest rated etc. albums
// organized by ID3 tags.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getAlbumList2
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getalbumlist2/
func (c *Client) GetAlbumList2(ctx context.Context, req ReqGetAlbumList) ([]Record, error) {
	params, err := MarshalValues(req)
	if err != nil {
		return nil, err
	}
	return c.listRecords(ctx, "getAlbumList2", params, "album")
}

// ReqGetSongsByGenre is the arguments to [Client.GetSongsByGenre].
type ReqGetSongsByGenre struct {
	// Genre is the genre to return songs for.
	Genre string `url:"genre"`
	// Count is the maximum number of songs to return. Max 500.
	Count *int `url:"count,omitempty"`
	// Offset is the list offset. Useful if you want to page through the songs
	// in a genre.
	Offset *int `url:"offset,omitempty"`
	// MusicFolderID restricts the server to return albums in the music folder
	// with the given ID. Added in 1.12.0.
	MusicFolderID *SubsonicID `url:"musicFolderId,omitempty"`
}

// GetSongsByGenre returns songs in a given genre.
//
// Docs: [Subsonic], [OpenSubsonic]
//
// [Subsonic]: http://www.subsonic.org/pages/api.jsp#getSongsByGenre
// [OpenSubsonic]: https://opensubsonic.netlify.app/docs/endpoints/getsongsbygenre/
func (c *Client) GetSongsByGenre(ctx context.Context, req ReqGetSongsByGenre) ([]Record, error) {
	params, err := MarshalValues(req)
	if err != nil {
		return nil, err
	}
	return c.listRecords(ctx, "getSongsByGenre", params, "song")
}
