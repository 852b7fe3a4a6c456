package ddexmap

import (
	"net/url"
	"strings"
)

// NormalizeURL resolves href against base and strips the fragment.
// Returns an empty string if either cannot be parsed.
func NormalizeURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved.String()
}

// DomainSet is an allow-list of host suffixes.
type DomainSet []string

// Allows reports whether the URL's host, compared case-insensitively,
// ends with one of the suffixes in the set.
func (s DomainSet) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, suffix := range s {
		if strings.HasSuffix(host, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}
