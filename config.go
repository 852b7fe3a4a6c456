package ddexmap

import "time"

// Default crawl settings.
const (
	DefaultUserAgent         = "MusicTechLab-DDexScraper/1.2"
	DefaultMaxDepth          = 5
	DefaultMaxPages          = 1000
	DefaultDelay             = 500 * time.Millisecond
	DefaultFetchTimeout      = 15 * time.Second
	DefaultCheckTimeout      = 8 * time.Second
	DefaultPlaceholderPrefix = "https://ddex.net/docs/"
)

// Config holds the fixed parameters of a crawl and reconcile run.
// It is built once and passed to the components that need it.
type Config struct {
	// Seeds are the URLs the crawl starts from, all at depth 0.
	Seeds []string

	// AllowedDomains confines the crawl to hosts ending in one of these suffixes.
	AllowedDomains DomainSet

	// DomainPriority weights pages by exact host when scoring.
	DomainPriority map[string]int

	// MaxDepth is the deepest level whose pages are fetched.
	// Links found on a page at MaxDepth are not followed.
	MaxDepth int

	// MaxPages caps the number of successfully parsed pages.
	MaxPages int

	// Delay is the pause after each successfully fetched page.
	Delay time.Duration

	UserAgent    string
	FetchTimeout time.Duration
	CheckTimeout time.Duration

	// PlaceholderPrefix marks unresolved tag map entries that may be
	// replaced by crawl results.
	PlaceholderPrefix string
}

// DefaultConfig returns the configuration for the official DDEX sites.
func DefaultConfig() Config {
	return Config{
		Seeds: []string{
			"https://ern.ddex.net/",
			"https://service.ddex.net/dd/ERN38/",
			"https://ddex.net/standards/",
		},
		AllowedDomains: DomainSet{"ern.ddex.net", "service.ddex.net", "ddex.net"},
		DomainPriority: map[string]int{
			"ern.ddex.net":     3,
			"service.ddex.net": 2,
			"ddex.net":         1,
		},
		MaxDepth:          DefaultMaxDepth,
		MaxPages:          DefaultMaxPages,
		Delay:             DefaultDelay,
		UserAgent:         DefaultUserAgent,
		FetchTimeout:      DefaultFetchTimeout,
		CheckTimeout:      DefaultCheckTimeout,
		PlaceholderPrefix: DefaultPlaceholderPrefix,
	}
}

// Validate returns an error if the configuration cannot drive a crawl.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return Errorf(EINVALID, "at least one seed URL required")
	}
	if len(c.AllowedDomains) == 0 {
		return Errorf(EINVALID, "at least one allowed domain required")
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative: %d", c.MaxDepth)
	}
	if c.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive: %d", c.MaxPages)
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delay must not be negative: %s", c.Delay)
	}
	return nil
}
