// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// URLSet records which URLs have been seen.
//
// The Bloom filter answers most negative lookups without touching the
// exact set; a positive from the filter is confirmed against the exact
// set so a false positive never drops a URL. URLSet is safe for
// concurrent use.
type URLSet struct {
	mu    sync.Mutex
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewURLSet creates a set sized for n expected URLs with the given
// false positive rate.
func NewURLSet(n uint, fpRate float64) *URLSet {
	if n == 0 {
		n = 1
	}
	return &URLSet{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}, n),
	}
}

// Add records url as seen.
func (s *URLSet) Add(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(url)
}

// Test reports whether url has been added.
func (s *URLSet) Test(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.test(url)
}

// TestAndAdd records url and reports whether it was already present.
func (s *URLSet) TestAndAdd(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.test(url) {
		return true
	}
	s.add(url)
	return false
}

// Len returns the exact number of distinct URLs added.
func (s *URLSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exact)
}

// EstimatedCount returns the filter's approximation of the number of URLs added.
func (s *URLSet) EstimatedCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}

func (s *URLSet) add(url string) {
	s.f.AddString(url)
	s.exact[url] = struct{}{}
}

func (s *URLSet) test(url string) bool {
	if !s.f.TestString(url) {
		return false
	}
	_, ok := s.exact[url]
	return ok
}
