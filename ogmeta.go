// Package ogmeta extracts Open Graph, Twitter Card and generic site
// metadata from the <meta> tags of an HTML document.
//
// The extraction core (ScanTags, ExtractPair, Aggregate, Parse) is a pure
// function of already-decoded text and never fails: malformed tags are
// dropped rather than reported. Fetching, rendering, persistence and
// logging live in subpackages named after their primary dependency
// (http/, rod/, goquery/, sqlite/, slog/), following Ben Johnson's
// Standard Package Layout.
package ogmeta
