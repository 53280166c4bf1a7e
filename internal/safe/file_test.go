package safe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "chart.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"type":"bar"}`), 0o600))

	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.Symlink(src, link))

	t.Run("regular file", func(t *testing.T) {
		data, err := ReadFile(src, nil)
		require.NoError(t, err)
		assert.Equal(t, `{"type":"bar"}`, string(data))
	})

	t.Run("rejects symlink by default", func(t *testing.T) {
		_, err := ReadFile(link, nil)
		assert.ErrorContains(t, err, "symlink")
	})

	t.Run("follows symlink when allowed", func(t *testing.T) {
		data, err := ReadFile(link, &ReadOptions{AllowSymlinks: true})
		require.NoError(t, err)
		assert.Equal(t, `{"type":"bar"}`, string(data))
	})

	t.Run("rejects directory", func(t *testing.T) {
		_, err := ReadFile(dir, nil)
		assert.ErrorContains(t, err, "not a regular file")
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		_, err := ReadFile(src, &ReadOptions{MaxSize: 4})
		assert.ErrorContains(t, err, "exceeds maximum allowed size")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "nope.json"), nil)
		assert.True(t, os.IsNotExist(err))
	})
}
