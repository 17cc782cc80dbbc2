package ogmeta

import (
	"encoding/json"
	"sort"
	"strings"
)

// Metadata is the attribute map extracted from one document, with typed
// lookups over it. Metadata is immutable once built and safe for
// concurrent reads. A nil *Metadata behaves as an empty map.
type Metadata struct {
	attrs map[string]string
}

// NewMetadata returns Metadata holding a copy of attrs.
func NewMetadata(attrs map[string]string) *Metadata {
	m := &Metadata{attrs: make(map[string]string, len(attrs))}
	for k, v := range attrs {
		m.attrs[k] = v
	}
	return m
}

// Raw looks up key verbatim.
func (m *Metadata) Raw(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.attrs[key]
	return v, ok
}

// OpenGraph looks up the "og:"-prefixed form of key.
func (m *Metadata) OpenGraph(key OpenGraphKey) (string, bool) {
	return m.Raw(key.Key())
}

// Site looks up a site metadata key.
func (m *Metadata) Site(key SiteKey) (string, bool) {
	return m.Raw(key.Key())
}

// Twitter looks up a Twitter Card key.
func (m *Metadata) Twitter(key TwitterKey) (string, bool) {
	return m.Raw(key.Key())
}

// Len returns the number of attributes.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.attrs)
}

// Keys returns all attribute keys in sorted order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.attrs))
	for k := range m.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the attributes.
func (m *Metadata) Map() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.attrs {
		out[k] = v
	}
	return out
}

// WithPrefix returns a copy of the attributes whose key starts with prefix.
func (m *Metadata) WithPrefix(prefix string) map[string]string {
	out := make(map[string]string)
	if m == nil {
		return out
	}
	for k, v := range m.attrs {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out
}

// MarshalJSON encodes the attributes as a flat JSON object.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Map())
}

// UnmarshalJSON decodes a flat JSON object of string values.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var attrs map[string]string
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}
	if attrs == nil {
		attrs = make(map[string]string)
	}
	m.attrs = attrs
	return nil
}
