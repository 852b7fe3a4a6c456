package ddexmap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// TagMap maps tags to documentation URLs, preserving key order.
// The zero value is an empty map ready to use.
type TagMap struct {
	keys   []string
	values map[string]string
}

// NewTagMap returns an empty TagMap.
func NewTagMap() *TagMap {
	return &TagMap{values: make(map[string]string)}
}

// Set assigns url to tag. New tags are appended to the key order.
func (m *TagMap) Set(tag, url string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[tag]; !ok {
		m.keys = append(m.keys, tag)
	}
	m.values[tag] = url
}

// Get returns the URL for tag and whether the tag is present.
func (m *TagMap) Get(tag string) (string, bool) {
	url, ok := m.values[tag]
	return url, ok
}

// Tags returns the tags in insertion order.
func (m *TagMap) Tags() []string {
	tags := make([]string, len(m.keys))
	copy(tags, m.keys)
	return tags
}

// Len returns the number of tags.
func (m *TagMap) Len() int {
	return len(m.keys)
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *TagMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tag := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(tag)
		if err != nil {
			return nil, err
		}
		v, err := marshalString(m.values[tag])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString encodes s as a JSON string without HTML escaping,
// so URLs keep their ampersands readable.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a JSON object, keeping its key order.
// Values that are not strings are stored as empty strings.
func (m *TagMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return Errorf(EINVALID, "invalid tag map: %v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Errorf(EINVALID, "invalid tag map: expected JSON object")
	}

	*m = TagMap{values: make(map[string]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Errorf(EINVALID, "invalid tag map: %v", err)
		}
		tag, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Errorf(EINVALID, "invalid tag map value for %q: %v", tag, err)
		}
		var url string
		if err := json.Unmarshal(raw, &url); err != nil {
			url = ""
		}
		m.Set(tag, url)
	}

	if _, err := dec.Token(); err != nil {
		return Errorf(EINVALID, "invalid tag map: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Errorf(EINVALID, "invalid tag map: unexpected data after object")
	}
	return nil
}

// Encode returns the map as indented JSON with a trailing newline.
func (m *TagMap) Encode() ([]byte, error) {
	raw, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// IsPlaceholder reports whether url is an unresolved placeholder entry.
func IsPlaceholder(url, prefix string) bool {
	return prefix != "" && strings.HasPrefix(url, prefix)
}

// MapStore loads and persists tag maps.
type MapStore interface {
	// Load reads the tag map at path.
	// Returns ENOTFOUND if the file does not exist and EINVALID if it
	// is not a JSON object.
	Load(ctx context.Context, path string) (*TagMap, error)

	// Save writes the tag map to path. It reports whether the file
	// content changed.
	Save(ctx context.Context, path string, m *TagMap) (changed bool, err error)
}
