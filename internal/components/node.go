package components

import (
	"net/url"

	"github.com/sublime-music/subsonic-source/pkg/catalog"
)

// NodeURL is the link to the page of an expandable node.
func NodeURL(id catalog.Identifier) string {
	if id.Kind == catalog.KindRoot {
		return "/ui"
	}
	return "/ui?id=" + url.QueryEscape(id.String())
}

// ResolveURL is the link that resolves a playable node.
func ResolveURL(id catalog.Identifier) string {
	return "/resolve?id=" + url.QueryEscape(id.String())
}
