package mock

import "github.com/musictechlab/ddexmap"

var _ ddexmap.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ddexmap.Extractor.
type Extractor struct {
	ExtractFn func(baseURL string, html string) (*ddexmap.Extraction, error)
}

func (e *Extractor) Extract(baseURL string, html string) (*ddexmap.Extraction, error) {
	return e.ExtractFn(baseURL, html)
}
