// Package web ships the chat page and its stylesheet.
package web

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed assets/index.html assets/style.css
var assets embed.FS

// Bootstrap writes index.html and style.css into dir unless they already
// exist. Files already on disk are left alone so they can be customized.
func Bootstrap(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create static dir: %w", err)
	}

	entries, err := fs.ReadDir(assets, "assets")
	if err != nil {
		return nil, err
	}

	var written []string
	for _, entry := range entries {
		target := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(target); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("stat %s: %w", target, err)
		}

		data, err := assets.ReadFile("assets/" + entry.Name())
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
