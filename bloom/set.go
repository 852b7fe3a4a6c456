// Package bloom provides the crawl's visited-URL set, backed by a Bloom
// filter in front of an exact index.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set records visited URLs. A negative Bloom filter answer is final;
// a positive one is confirmed against the exact index, so Has never
// reports a false positive.
type Set struct {
	filter *bloom.BloomFilter
	exact  map[string]struct{}
}

// NewSet creates a Set sized for n expected URLs with the given
// filter false positive rate.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		filter: bloom.NewWithEstimates(n, fpRate),
		exact:  make(map[string]struct{}),
	}
}

// Add marks url as visited.
func (s *Set) Add(url string) {
	s.filter.AddString(url)
	s.exact[url] = struct{}{}
}

// Has reports whether url has been visited.
func (s *Set) Has(url string) bool {
	if !s.filter.TestString(url) {
		return false
	}
	_, ok := s.exact[url]
	return ok
}

// Len returns the number of visited URLs.
func (s *Set) Len() int {
	return len(s.exact)
}
