package ogmeta_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/ogmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_Lookups(t *testing.T) {
	t.Parallel()

	md := ogmeta.NewMetadata(map[string]string{
		"og:title":     "Hello",
		"description":  "A page",
		"twitter:card": "summary",
		"theme-color":  "#fff",
	})

	t.Run("open graph lookup adds the og prefix", func(t *testing.T) {
		t.Parallel()

		v, ok := md.OpenGraph(ogmeta.OGTitle)
		require.True(t, ok)
		assert.Equal(t, "Hello", v)

		_, ok = md.OpenGraph(ogmeta.OGImage)
		assert.False(t, ok)
	})

	t.Run("site lookup is verbatim", func(t *testing.T) {
		t.Parallel()

		v, ok := md.Site(ogmeta.SiteDescription)
		require.True(t, ok)
		assert.Equal(t, "A page", v)

		_, ok = md.Site(ogmeta.SiteAuthor)
		assert.False(t, ok)
	})

	t.Run("twitter lookup is verbatim", func(t *testing.T) {
		t.Parallel()

		v, ok := md.Twitter(ogmeta.TwitterCard)
		require.True(t, ok)
		assert.Equal(t, "summary", v)
	})

	t.Run("raw lookup reaches keys outside the closed sets", func(t *testing.T) {
		t.Parallel()

		v, ok := md.Raw("theme-color")
		require.True(t, ok)
		assert.Equal(t, "#fff", v)
	})
}

func TestMetadata_IsDetachedFromInput(t *testing.T) {
	t.Parallel()

	attrs := map[string]string{"og:title": "before"}
	md := ogmeta.NewMetadata(attrs)
	attrs["og:title"] = "after"

	v, _ := md.Raw("og:title")
	assert.Equal(t, "before", v)

	copied := md.Map()
	copied["og:title"] = "changed"
	v, _ = md.Raw("og:title")
	assert.Equal(t, "before", v)
}

func TestMetadata_Nil(t *testing.T) {
	t.Parallel()

	var md *ogmeta.Metadata

	_, ok := md.Raw("og:title")
	assert.False(t, ok)
	assert.Equal(t, 0, md.Len())
	assert.Empty(t, md.Keys())
	assert.Empty(t, md.Map())
}

func TestMetadata_KeysAreSorted(t *testing.T) {
	t.Parallel()

	md := ogmeta.NewMetadata(map[string]string{"og:url": "u", "author": "a", "og:title": "t"})

	assert.Equal(t, []string{"author", "og:title", "og:url"}, md.Keys())
}

func TestMetadata_WithPrefix(t *testing.T) {
	t.Parallel()

	md := ogmeta.NewMetadata(map[string]string{"og:url": "u", "twitter:card": "c", "og:title": "t"})

	assert.Equal(t, map[string]string{"og:url": "u", "og:title": "t"}, md.WithPrefix("og:"))
}

func TestMetadata_JSON(t *testing.T) {
	t.Parallel()

	md := ogmeta.NewMetadata(map[string]string{"og:title": "Hello"})

	data, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, `{"og:title":"Hello"}`, string(data))

	var decoded ogmeta.Metadata
	require.NoError(t, json.Unmarshal([]byte(`{"description":"x"}`), &decoded))
	v, ok := decoded.Site(ogmeta.SiteDescription)
	require.True(t, ok)
	assert.Equal(t, "x", v)
}
