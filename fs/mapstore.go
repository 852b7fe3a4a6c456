// Package fs provides file-based storage for tag maps.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/musictechlab/ddexmap"
)

// Ensure MapStore implements ddexmap.MapStore at compile time.
var _ ddexmap.MapStore = (*MapStore)(nil)

// MapStore reads and writes tag maps as JSON files.
// Saves are atomic: content goes to a temporary file in the target
// directory which is then renamed over the destination.
type MapStore struct{}

// NewMapStore creates a new MapStore.
func NewMapStore() *MapStore {
	return &MapStore{}
}

// Load reads the tag map at path.
func (s *MapStore) Load(ctx context.Context, path string) (*ddexmap.TagMap, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ddexmap.Errorf(ddexmap.ENOTFOUND, "tag map %q not found", path)
	} else if err != nil {
		return nil, err
	}

	m := ddexmap.NewTagMap()
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, ddexmap.Errorf(ddexmap.EINVALID, "%s: %s", path, ddexmap.ErrorMessage(err))
	}
	return m, nil
}

// Save writes m to path as indented JSON. If the file already holds the
// same content it is left untouched and changed is false.
func (s *MapStore) Save(ctx context.Context, path string, m *ddexmap.TagMap) (changed bool, err error) {
	data, err := m.Encode()
	if err != nil {
		return false, err
	}

	if existing, err := os.ReadFile(path); err == nil && ComputeHash(existing) == ComputeHash(data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err = tmp.Close(); err != nil {
		return false, err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return false, err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}

// ComputeHash returns the xxhash digest of content.
func ComputeHash(content []byte) uint64 {
	return xxhash.Sum64(content)
}
