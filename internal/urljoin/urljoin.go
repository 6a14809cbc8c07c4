package urljoin

import "net/url"

// Policy joins a base and a path segment into a link.
type Policy func(base, segment string) string

// Concat returns base+segment verbatim. Used to build the catalog request
// URL, so "https://host/" + "registries" and "" + "/registries/" both work,
// and "https://host/" + "/x" keeps the doubled slash.
func Concat(base, segment string) string {
	return base + segment
}

// Slash returns base + "/" + segment verbatim. A base that already ends in a
// slash yields a doubled separator.
func Slash(base, segment string) string {
	return base + "/" + segment
}

// Trailing ignores base and returns segment + "/", producing a link relative
// to the page that hosts the listing.
func Trailing(_, segment string) string {
	return segment + "/"
}

// Resolve returns href as an anchor's resolved href property would report it:
// absolute hrefs are re-serialized, relative ones are resolved against
// pageURL. When either value cannot be parsed, href is returned unchanged.
func Resolve(pageURL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	if pageURL == "" {
		return ref.String()
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
