package ogmeta_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/ogmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("open graph title by raw and typed lookup", func(t *testing.T) {
		t.Parallel()

		md := ogmeta.Parse(`<meta property="og:title" content="Hello">`)

		v, ok := md.Raw("og:title")
		require.True(t, ok)
		assert.Equal(t, "Hello", v)

		v, ok = md.OpenGraph(ogmeta.OGTitle)
		require.True(t, ok)
		assert.Equal(t, "Hello", v)
	})

	t.Run("later duplicate wins", func(t *testing.T) {
		t.Parallel()

		md := ogmeta.Parse(`<meta name="description" content="first">` +
			`<p>body</p>` +
			`<meta name="description" content="second">`)

		v, ok := md.Site(ogmeta.SiteDescription)
		require.True(t, ok)
		assert.Equal(t, "second", v)
		assert.Equal(t, 1, md.Len())
	})

	t.Run("document without meta tags yields empty metadata", func(t *testing.T) {
		t.Parallel()

		md := ogmeta.Parse("<html><head><title>t</title></head><body></body></html>")

		assert.Equal(t, 0, md.Len())
		_, ok := md.OpenGraph(ogmeta.OGTitle)
		assert.False(t, ok)
		for _, k := range ogmeta.SiteKeys() {
			_, ok := md.Site(k)
			assert.False(t, ok)
		}
		for _, k := range ogmeta.TwitterKeys() {
			_, ok := md.Twitter(k)
			assert.False(t, ok)
		}
	})

	t.Run("twitter card with single-quoted content", func(t *testing.T) {
		t.Parallel()

		md := ogmeta.Parse(`<meta name="twitter:card" content='summary'>`)

		v, ok := md.Twitter(ogmeta.TwitterCard)
		require.True(t, ok)
		assert.Equal(t, "summary", v)
	})

	t.Run("single and double quoted forms are equivalent", func(t *testing.T) {
		t.Parallel()

		double := ogmeta.Parse(`<meta name="author" content="Jane">`)
		single := ogmeta.Parse(`<meta name='author' content='Jane'>`)

		assert.Equal(t, double.Map(), single.Map())
	})

	t.Run("incomplete tags contribute nothing", func(t *testing.T) {
		t.Parallel()

		md := ogmeta.Parse(`<meta property="og:title">` +
			`<meta content="orphan">` +
			`<meta property="og:url" content="https://example.com">`)

		assert.Equal(t, map[string]string{"og:url": "https://example.com"}, md.Map())
	})

	t.Run("unterminated tag does not corrupt later tags", func(t *testing.T) {
		t.Parallel()

		md := ogmeta.Parse(`<meta property="og:title" content="X"` + "\n" +
			`<meta property="og:type" content="article">`)

		assert.Equal(t, map[string]string{"og:type": "article"}, md.Map())
	})

	t.Run("realistic head", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Example</title>
  <meta name="description" content="An example page">
  <meta name="keywords" content="a, b, c">
  <meta property="og:title" content="Example &amp; Co">
  <meta property="og:image" content="https://example.com/a.png?x=1&y=2">
  <meta property="og:image:width" content="1200">
  <meta name="twitter:card" content="summary_large_image">
  <meta name="twitter:site" content="@example">
  <link rel="icon" href="/favicon.ico">
</head>
<body><p>ignored <meta in text</p></body>
</html>`

		md := ogmeta.Parse(html)

		assert.Equal(t, map[string]string{
			"viewport":       "width=device-width, initial-scale=1",
			"description":    "An example page",
			"keywords":       "a, b, c",
			"og:title":       "Example &amp; Co",
			"og:image":       "https://example.com/a.png?x=1&y=2",
			"og:image:width": "1200",
			"twitter:card":   "summary_large_image",
			"twitter:site":   "@example",
		}, md.Map())
	})
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("skips absent pairs and overwrites duplicates", func(t *testing.T) {
		t.Parallel()

		pairs := func(yield func(ogmeta.Pair, bool) bool) {
			_ = yield(ogmeta.Pair{Key: "k", Value: "1"}, true) &&
				yield(ogmeta.Pair{}, false) &&
				yield(ogmeta.Pair{Key: "k", Value: "2"}, true) &&
				yield(ogmeta.Pair{Key: "j", Value: "3"}, true)
		}

		md := ogmeta.Aggregate(pairs)

		assert.Equal(t, map[string]string{"k": "2", "j": "3"}, md.Map())
	})

	t.Run("order decides which duplicate survives", func(t *testing.T) {
		t.Parallel()

		forward := ogmeta.Parse(`<meta name="a" content="1"><meta name="a" content="2">`)
		reverse := ogmeta.Parse(`<meta name="a" content="2"><meta name="a" content="1">`)

		v, _ := forward.Raw("a")
		assert.Equal(t, "2", v)
		v, _ = reverse.Raw("a")
		assert.Equal(t, "1", v)
	})
}

func TestPairs(t *testing.T) {
	t.Parallel()

	var got []bool
	for _, ok := range ogmeta.Pairs(`<meta charset="utf-8"><meta name="a" content="b">`) {
		got = append(got, ok)
	}

	assert.Equal(t, []bool{false, true}, got)
}

func TestMetaTagParser_ConcurrentUse(t *testing.T) {
	t.Parallel()

	var parser ogmeta.Parser = ogmeta.MetaTagParser{}

	var wg sync.WaitGroup
	results := make([]*ogmeta.Metadata, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = parser.Parse(fmt.Sprintf(`<meta property="og:title" content="page %d">`, i))
		}(i)
	}
	wg.Wait()

	for i, md := range results {
		v, ok := md.OpenGraph(ogmeta.OGTitle)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("page %d", i), v)
	}
}

func TestParse_LargeDocument(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&b, `<meta name="k%d" content="%s">`, i, strings.Repeat("'", 10))
	}

	md := ogmeta.Parse(b.String())

	assert.Equal(t, 1000, md.Len())
}
