package ogmeta

import "strings"

// OpenGraphPrefix is prepended to an OpenGraphKey to form the raw key.
const OpenGraphPrefix = "og:"

// OpenGraphKey names an Open Graph property without its "og:" prefix.
// The set is open: any string is a valid key.
type OpenGraphKey string

// Open Graph properties from https://ogp.me.
const (
	OGTitle       OpenGraphKey = "title"
	OGType        OpenGraphKey = "type"
	OGImage       OpenGraphKey = "image"
	OGURL         OpenGraphKey = "url"
	OGDescription OpenGraphKey = "description"
	OGSiteName    OpenGraphKey = "site_name"
	OGLocale      OpenGraphKey = "locale"
	OGDeterminer  OpenGraphKey = "determiner"
	OGAudio       OpenGraphKey = "audio"
	OGVideo       OpenGraphKey = "video"

	OGImageURL       OpenGraphKey = "image:url"
	OGImageSecureURL OpenGraphKey = "image:secure_url"
	OGImageType      OpenGraphKey = "image:type"
	OGImageWidth     OpenGraphKey = "image:width"
	OGImageHeight    OpenGraphKey = "image:height"
	OGImageAlt       OpenGraphKey = "image:alt"

	OGVideoURL       OpenGraphKey = "video:url"
	OGVideoSecureURL OpenGraphKey = "video:secure_url"
	OGVideoType      OpenGraphKey = "video:type"
	OGVideoWidth     OpenGraphKey = "video:width"
	OGVideoHeight    OpenGraphKey = "video:height"

	OGAudioURL       OpenGraphKey = "audio:url"
	OGAudioSecureURL OpenGraphKey = "audio:secure_url"
	OGAudioType      OpenGraphKey = "audio:type"
)

// Key returns the raw attribute key, e.g. "og:title".
func (k OpenGraphKey) Key() string {
	return OpenGraphPrefix + string(k)
}

// SiteKey names a generic site metadata attribute. Keys are looked up verbatim.
type SiteKey string

// Site metadata keys.
const (
	SiteDescription SiteKey = "description"
	SiteAuthor      SiteKey = "author"
	SiteKeywords    SiteKey = "keywords"
	SiteCharset     SiteKey = "charset"
)

// SiteKeys returns every SiteKey in declaration order.
func SiteKeys() []SiteKey {
	return []SiteKey{SiteDescription, SiteAuthor, SiteKeywords, SiteCharset}
}

// Key returns the raw attribute key.
func (k SiteKey) Key() string {
	return string(k)
}

// Valid reports whether k is one of the declared site keys.
func (k SiteKey) Valid() bool {
	for _, v := range SiteKeys() {
		if k == v {
			return true
		}
	}
	return false
}

// TwitterKey names a Twitter Card attribute. Keys carry their "twitter:"
// prefix and are looked up verbatim.
type TwitterKey string

// Twitter Card keys.
const (
	TwitterURL     TwitterKey = "twitter:url"
	TwitterTitle   TwitterKey = "twitter:title"
	TwitterImage   TwitterKey = "twitter:image"
	TwitterCard    TwitterKey = "twitter:card"
	TwitterSite    TwitterKey = "twitter:site"
	TwitterCreator TwitterKey = "twitter:creator"
)

// TwitterKeys returns every TwitterKey in declaration order.
func TwitterKeys() []TwitterKey {
	return []TwitterKey{TwitterURL, TwitterTitle, TwitterImage, TwitterCard, TwitterSite, TwitterCreator}
}

// Key returns the raw attribute key.
func (k TwitterKey) Key() string {
	return string(k)
}

// Valid reports whether k is one of the declared Twitter Card keys.
func (k TwitterKey) Valid() bool {
	for _, v := range TwitterKeys() {
		if k == v {
			return true
		}
	}
	return false
}

// ParseSiteKey converts a name such as "description" into a SiteKey.
// Returns EINVALID for names outside the closed set.
func ParseSiteKey(name string) (SiteKey, error) {
	k := SiteKey(strings.TrimSpace(name))
	if !k.Valid() {
		return "", Errorf(EINVALID, "unknown site metadata key %q", name)
	}
	return k, nil
}

// ParseTwitterKey converts "card" or "twitter:card" into a TwitterKey.
// Returns EINVALID for names outside the closed set.
func ParseTwitterKey(name string) (TwitterKey, error) {
	name = strings.TrimSpace(name)
	k := TwitterKey(name)
	if !strings.HasPrefix(name, "twitter:") {
		k = TwitterKey("twitter:" + name)
	}
	if !k.Valid() {
		return "", Errorf(EINVALID, "unknown twitter card key %q", name)
	}
	return k, nil
}
