package web

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap_WritesMissingAssets(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "web")

	written, err := Bootstrap(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "index.html"),
		filepath.Join(dir, "style.css"),
	}, written)

	page, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "/static/style.css")
}

func TestBootstrap_KeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(custom, []byte("body{color:red}"), 0o644))

	written, err := Bootstrap(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "index.html")}, written)

	css, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", string(css))

	written, err = Bootstrap(dir)
	require.NoError(t, err)
	assert.Empty(t, written)
}
