package catalog

import (
	"golang.org/x/text/language"
)

// Title keys.
const (
	TitleArtists   = "artists"
	TitleAlbums    = "albums"
	TitlePlaylists = "playlists"
	TitleRadios    = "radios"
	TitleGenres    = "genres"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var titles = map[language.Tag]map[string]string{
	language.English: {
		TitleArtists:   "Artists",
		TitleAlbums:    "Albums",
		TitlePlaylists: "Playlists",
		TitleRadios:    "Radios",
		TitleGenres:    "Genres",
	},
	language.BrazilianPortuguese: {
		TitleArtists:   "Artistas",
		TitleAlbums:    "Álbuns",
		TitlePlaylists: "Playlists",
		TitleRadios:    "Rádios",
		TitleGenres:    "Gêneros",
	},
}

// Translate returns the title for key in the closest supported language.
// Unsupported languages fall back to English and unknown keys are returned
// as is.
func Translate(lang, key string) string {
	_, idx := language.MatchStrings(languageMatcher, lang)
	if title, ok := titles[supportedLanguages[idx]][key]; ok {
		return title
	}
	return key
}
