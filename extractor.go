package ddexmap

// Extraction holds what a page contributes to the crawl.
type Extraction struct {
	// Links are normalized, allow-listed outbound links in document order.
	// Duplicates are kept.
	Links []string

	// Text is the condensed corpus used for scoring.
	Text string
}

// Extractor parses a fetched page into links and scoring text.
type Extractor interface {
	// Extract parses html. baseURL resolves relative links.
	Extract(baseURL string, html string) (*Extraction, error)
}
