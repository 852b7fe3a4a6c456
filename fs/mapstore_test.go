package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/musictechlab/ddexmap"
	"github.com/musictechlab/ddexmap/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("reads tags in file order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ddex-map.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
  "ISRC": "https://ddex.net/docs/isrc",
  "Deal": "",
  "Count": 3
}`), 0644))

		m, err := fs.NewMapStore().Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, []string{"ISRC", "Deal", "Count"}, m.Tags())
		url, _ := m.Get("ISRC")
		assert.Equal(t, "https://ddex.net/docs/isrc", url)
		count, ok := m.Get("Count")
		assert.True(t, ok)
		assert.Empty(t, count)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewMapStore().Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

		require.Error(t, err)
		assert.Equal(t, ddexmap.ENOTFOUND, ddexmap.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"ISRC": `), 0644))

		_, err := fs.NewMapStore().Load(context.Background(), path)

		require.Error(t, err)
		assert.Equal(t, ddexmap.EINVALID, ddexmap.ErrorCode(err))
		assert.Contains(t, ddexmap.ErrorMessage(err), path)
	})

	t.Run("returns EINVALID for non-object JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "array.json")
		require.NoError(t, os.WriteFile(path, []byte(`["ISRC"]`), 0644))

		_, err := fs.NewMapStore().Load(context.Background(), path)

		require.Error(t, err)
		assert.Equal(t, ddexmap.EINVALID, ddexmap.ErrorCode(err))
	})
}

func TestMapStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes indented JSON in tag order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "ddex-map.updated.json")
		m := ddexmap.NewTagMap()
		m.Set("ISRC", "https://ern.ddex.net/isrc-spec")
		m.Set("Deal", "")

		changed, err := fs.NewMapStore().Save(context.Background(), path, m)

		require.NoError(t, err)
		assert.True(t, changed)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"ISRC\": \"https://ern.ddex.net/isrc-spec\",\n  \"Deal\": \"\"\n}\n", string(data))
	})

	t.Run("leaves identical file untouched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ddex-map.json")
		m := ddexmap.NewTagMap()
		m.Set("ISRC", "https://ern.ddex.net/isrc-spec")
		store := fs.NewMapStore()

		_, err := store.Save(context.Background(), path, m)
		require.NoError(t, err)
		old := time.Now().Add(-time.Hour).Truncate(time.Second)
		require.NoError(t, os.Chtimes(path, old, old))

		changed, err := store.Save(context.Background(), path, m)

		require.NoError(t, err)
		assert.False(t, changed)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(old), "file should not be rewritten")
	})

	t.Run("overwrites file with different content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ddex-map.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"ISRC": "https://ddex.net/docs/isrc"}`), 0644))
		m := ddexmap.NewTagMap()
		m.Set("ISRC", "")

		changed, err := fs.NewMapStore().Save(context.Background(), path, m)

		require.NoError(t, err)
		assert.True(t, changed)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"ISRC\": \"\"\n}\n", string(data))
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := ddexmap.NewTagMap()
		m.Set("Release", "https://ern.ddex.net/release")

		_, err := fs.NewMapStore().Save(context.Background(), filepath.Join(dir, "map.json"), m)

		require.NoError(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "map.json", entries[0].Name())
	})

	t.Run("returns error when directory cannot be created", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		_, err := fs.NewMapStore().Save(context.Background(), filepath.Join(blocker, "map.json"), ddexmap.NewTagMap())

		require.Error(t, err)
	})
}
