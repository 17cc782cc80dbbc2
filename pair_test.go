package ogmeta_test

import (
	"testing"

	"github.com/fwojciec/ogmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPair(t *testing.T) {
	t.Parallel()

	t.Run("property with double-quoted content", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta property="og:title" content="Hello">`)

		require.True(t, ok)
		assert.Equal(t, ogmeta.Pair{Key: "og:title", Value: "Hello"}, pair)
	})

	t.Run("name with single-quoted content", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta name='description' content='A page'>`)

		require.True(t, ok)
		assert.Equal(t, ogmeta.Pair{Key: "description", Value: "A page"}, pair)
	})

	t.Run("content may precede the key", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta content="Hello" property="og:title" />`)

		require.True(t, ok)
		assert.Equal(t, ogmeta.Pair{Key: "og:title", Value: "Hello"}, pair)
	})

	t.Run("first of property or name wins in textual order", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta name="twitter:title" property="og:title" content="x">`)
		require.True(t, ok)
		assert.Equal(t, "twitter:title", pair.Key)

		pair, ok = ogmeta.ExtractPair(`<meta property="og:title" name="twitter:title" content="x">`)
		require.True(t, ok)
		assert.Equal(t, "og:title", pair.Key)
	})

	t.Run("unquoted key before self-closing slash", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta content="A page" name=description/>`)
		require.True(t, ok)
		assert.Equal(t, ogmeta.Pair{Key: "description", Value: "A page"}, pair)

		pair, ok = ogmeta.ExtractPair(`<meta content="x" property=og:url/path/>`)
		require.True(t, ok)
		assert.Equal(t, "og:url/path", pair.Key)
	})

	t.Run("unquoted key", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta name=viewport content="width=device-width">`)

		require.True(t, ok)
		assert.Equal(t, ogmeta.Pair{Key: "viewport", Value: "width=device-width"}, pair)
	})

	t.Run("whitespace around equals", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair("<meta property = \"og:type\"\n content = \"website\">")

		require.True(t, ok)
		assert.Equal(t, ogmeta.Pair{Key: "og:type", Value: "website"}, pair)
	})

	t.Run("double-quoted content may contain a single quote", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta name="description" content="It's here">`)

		require.True(t, ok)
		assert.Equal(t, "It's here", pair.Value)
	})

	t.Run("single-quoted content may contain a double quote", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta name="description" content='He said "hi"'>`)

		require.True(t, ok)
		assert.Equal(t, `He said "hi"`, pair.Value)
	})

	t.Run("escaped quotes around values are not captured", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta property=\"og:title\" content=\"Hello\">`)

		require.True(t, ok)
		assert.Equal(t, ogmeta.Pair{Key: "og:title", Value: "Hello"}, pair)
	})

	t.Run("empty content is a present value", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta name="keywords" content="">`)

		require.True(t, ok)
		assert.Equal(t, ogmeta.Pair{Key: "keywords", Value: ""}, pair)
	})

	t.Run("name inside another attribute value is ignored", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ExtractPair(`<meta data-x=" name=bogus" content="v">`)

		assert.False(t, ok)
	})

	t.Run("key without content is dropped", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ExtractPair(`<meta property="og:title">`)

		assert.False(t, ok)
	})

	t.Run("content without key is dropped", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ExtractPair(`<meta content="orphan">`)

		assert.False(t, ok)
	})

	t.Run("empty key is skipped in favour of a later one", func(t *testing.T) {
		t.Parallel()

		pair, ok := ogmeta.ExtractPair(`<meta name="" property="og:url" content="u">`)

		require.True(t, ok)
		assert.Equal(t, "og:url", pair.Key)
	})

	t.Run("unquoted content is dropped", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ExtractPair(`<meta name="robots" content=noindex>`)

		assert.False(t, ok)
	})

	t.Run("charset-only tag is dropped", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ExtractPair(`<meta charset="utf-8">`)

		assert.False(t, ok)
	})

	t.Run("attribute names are case-sensitive", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ExtractPair(`<meta PROPERTY="og:title" CONTENT="Hello">`)

		assert.False(t, ok)
	})
}

func TestContentDoubleQuoted(t *testing.T) {
	t.Parallel()

	t.Run("finds double-quoted value", func(t *testing.T) {
		t.Parallel()

		v, ok := ogmeta.ContentDoubleQuoted(`<meta name="a" content="b">`)

		require.True(t, ok)
		assert.Equal(t, "b", v)
	})

	t.Run("ignores single-quoted value", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ContentDoubleQuoted(`<meta name="a" content='b'>`)

		assert.False(t, ok)
	})

	t.Run("requires whitespace before the attribute name", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ContentDoubleQuoted(`<meta name="a" data-content="b">`)

		assert.False(t, ok)
	})

	t.Run("trailing escaped quote is not captured", func(t *testing.T) {
		t.Parallel()

		v, ok := ogmeta.ContentDoubleQuoted(`<meta name="a" content="say \"`)

		require.True(t, ok)
		assert.Equal(t, "say ", v)
	})
}

func TestContentSingleQuoted(t *testing.T) {
	t.Parallel()

	t.Run("finds single-quoted value", func(t *testing.T) {
		t.Parallel()

		v, ok := ogmeta.ContentSingleQuoted(`<meta name="a" content='b'>`)

		require.True(t, ok)
		assert.Equal(t, "b", v)
	})

	t.Run("ignores double-quoted value", func(t *testing.T) {
		t.Parallel()

		_, ok := ogmeta.ContentSingleQuoted(`<meta name="a" content="b">`)

		assert.False(t, ok)
	})
}
