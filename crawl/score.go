package crawl

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scoring weights.
const (
	domainWeight   = 100
	urlMatchBonus  = 20
	occurrenceGain = 10
	maxOccurrences = 5
)

// Score ranks a page for a tag. It combines the host's priority weight,
// a bonus when the tag appears in the URL, and the number of whole-word
// occurrences of the tag in the page text (capped).
func Score(priority map[string]int, pageURL, text, tag string) int {
	s := priority[hostname(pageURL)] * domainWeight
	if strings.Contains(strings.ToLower(pageURL), strings.ToLower(tag)) {
		s += urlMatchBonus
	}
	s += min(CountWord(text, tag), maxOccurrences) * occurrenceGain
	return s
}

// CountWord counts non-overlapping, case-sensitive occurrences of word in
// text that are not flanked by word characters (letters, digits or
// underscore). The word is matched literally.
func CountWord(text, word string) int {
	if word == "" {
		return 0
	}
	n := 0
	for i := 0; i+len(word) <= len(text); {
		j := strings.Index(text[i:], word)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			n++
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return n
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
