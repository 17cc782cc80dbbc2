package ogmeta

import "strings"

// Pair is the key and value declared by one meta tag.
type Pair struct {
	Key   string
	Value string
}

// ExtractPair returns the key and content declared by one <meta ...> tag.
//
// The key is the value of the first "property" or "name" attribute in
// textual order. The value is the "content" attribute, delimited by double
// quotes or, failing that, by single quotes. ExtractPair reports false when
// either part is missing.
func ExtractPair(tag string) (Pair, bool) {
	key, ok := extractKey(tag)
	if !ok {
		return Pair{}, false
	}
	value, ok := ContentDoubleQuoted(tag)
	if !ok {
		value, ok = ContentSingleQuoted(tag)
	}
	if !ok {
		return Pair{}, false
	}
	return Pair{Key: key, Value: value}, true
}

// ContentDoubleQuoted returns the value of a double-quoted content attribute.
func ContentDoubleQuoted(tag string) (string, bool) {
	return quotedContent(tag, '"')
}

// ContentSingleQuoted returns the value of a single-quoted content attribute.
func ContentSingleQuoted(tag string) (string, bool) {
	return quotedContent(tag, '\'')
}

const contentAttr = "content"

// quotedContent finds the first whitespace-preceded content= whose value is
// delimited by quote. Backslashes just before either quote are dropped, so
// escaped markup such as content=\"x\" yields x.
func quotedContent(tag string, quote byte) (string, bool) {
	for i := 0; i < len(tag); {
		k := strings.Index(tag[i:], contentAttr)
		if k < 0 {
			return "", false
		}
		at := i + k
		i = at + len(contentAttr)
		if at == 0 || !isSpace(tag[at-1]) {
			continue
		}
		j := skipSpace(tag, i)
		if j >= len(tag) || tag[j] != '=' {
			continue
		}
		j = skipBackslashes(tag, skipSpace(tag, j+1))
		if j >= len(tag) || tag[j] != quote {
			continue
		}
		end := strings.IndexByte(tag[j+1:], quote)
		if end < 0 {
			return "", false
		}
		return strings.TrimRight(tag[j+1:j+1+end], `\`), true
	}
	return "", false
}

// extractKey tokenises the attributes of tag and returns the value of the
// first non-empty property or name attribute.
func extractKey(tag string) (string, bool) {
	i := 0
	if strings.HasPrefix(tag, metaOpen) {
		i = len(metaOpen)
	}
	for i < len(tag) {
		j := skipSpace(tag, i)
		spaced := j > i
		i = j
		if i >= len(tag) || tag[i] == '>' {
			break
		}
		if tag[i] == '/' {
			i++
			continue
		}

		start := i
		for i < len(tag) && !isSpace(tag[i]) && tag[i] != '=' && tag[i] != '>' && tag[i] != '/' {
			i++
		}
		name := tag[start:i]

		j = skipSpace(tag, i)
		if j >= len(tag) || tag[j] != '=' {
			continue
		}
		var value string
		value, i = attrValue(tag, skipSpace(tag, j+1))

		if spaced && (name == "property" || name == "name") && value != "" {
			return value, true
		}
	}
	return "", false
}

// attrValue reads a quoted or unquoted attribute value starting at i and
// returns it with the offset just past it. An unterminated quoted value
// consumes the rest of tag and reads as empty. An unquoted value ends
// before a self-closing "/>".
func attrValue(tag string, i int) (string, int) {
	j := skipBackslashes(tag, i)
	if j < len(tag) && (tag[j] == '"' || tag[j] == '\'') {
		end := strings.IndexByte(tag[j+1:], tag[j])
		if end < 0 {
			return "", len(tag)
		}
		return strings.TrimRight(tag[j+1:j+1+end], `\`), j + end + 2
	}
	for j = i; j < len(tag) && !isSpace(tag[j]) && tag[j] != '>'; j++ {
		if tag[j] == '/' && (j+1 == len(tag) || tag[j+1] == '>') {
			break
		}
	}
	return tag[i:j], j
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func skipBackslashes(s string, i int) int {
	for i < len(s) && s[i] == '\\' {
		i++
	}
	return i
}
