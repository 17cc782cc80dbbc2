package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/ogmeta"
)

// selected reports whether any individual value was requested.
func (f *LookupFlags) selected() bool {
	return len(f.OG)+len(f.Site)+len(f.Twitter)+len(f.Raw) > 0
}

// lookup resolves the requested keys against md. Keys are returned in
// flag order as full attribute names; missing lists keys without a value.
func (f *LookupFlags) lookup(md *ogmeta.Metadata) (found []ogmeta.Pair, missing []string, err error) {
	add := func(key, value string, ok bool) {
		if ok {
			found = append(found, ogmeta.Pair{Key: key, Value: value})
		} else {
			missing = append(missing, key)
		}
	}

	for _, name := range f.OG {
		k := ogmeta.OpenGraphKey(strings.TrimPrefix(name, ogmeta.OpenGraphPrefix))
		v, ok := md.OpenGraph(k)
		add(k.Key(), v, ok)
	}
	for _, name := range f.Site {
		k, err := ogmeta.ParseSiteKey(name)
		if err != nil {
			return nil, nil, err
		}
		v, ok := md.Site(k)
		add(k.Key(), v, ok)
	}
	for _, name := range f.Twitter {
		k, err := ogmeta.ParseTwitterKey(name)
		if err != nil {
			return nil, nil, err
		}
		v, ok := md.Twitter(k)
		add(k.Key(), v, ok)
	}
	for _, name := range f.Raw {
		v, ok := md.Raw(name)
		add(name, v, ok)
	}
	return found, missing, nil
}

// write prints md: every attribute by default, or only the requested
// values. Requested keys without a value produce an ENOTFOUND error
// after the found values are printed.
func (f *LookupFlags) write(w io.Writer, md *ogmeta.Metadata) error {
	if !f.selected() {
		if f.JSON {
			return writeJSON(w, md)
		}
		writePairs(w, pairsOf(md))
		return nil
	}

	found, missing, err := f.lookup(md)
	if err != nil {
		return err
	}

	if f.JSON {
		m := make(map[string]string, len(found))
		for _, p := range found {
			m[p.Key] = p.Value
		}
		if err := writeJSON(w, m); err != nil {
			return err
		}
	} else {
		writePairs(w, found)
	}

	if len(missing) > 0 {
		return ogmeta.Errorf(ogmeta.ENOTFOUND, "no value for %s", strings.Join(missing, ", "))
	}
	return nil
}

// pairsOf returns the attributes of md sorted by key.
func pairsOf(md *ogmeta.Metadata) []ogmeta.Pair {
	keys := md.Keys()
	pairs := make([]ogmeta.Pair, 0, len(keys))
	for _, k := range keys {
		v, _ := md.Raw(k)
		pairs = append(pairs, ogmeta.Pair{Key: k, Value: v})
	}
	return pairs
}

func writePairs(w io.Writer, pairs []ogmeta.Pair) {
	for _, p := range pairs {
		fmt.Fprintf(w, "%s\t%s\n", p.Key, p.Value)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fail prints err for the user and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", ogmeta.ErrorMessage(err))
	return err
}
