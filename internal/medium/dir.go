package medium

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// Dir stores each key as a JSON file inside a directory.
// Writes replace the file in one call; there is no journal.
type Dir struct {
	root string
}

// NewDir creates root if needed and returns a directory-backed medium.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("medium: create dir %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// path maps each key to its own file name; separators are escaped, so no key
// can leave root or collide with another key.
func (d *Dir) path(key string) string {
	return filepath.Join(d.root, url.PathEscape(key)+".json")
}

func (d *Dir) Get(_ context.Context, key string) (string, bool, error) {
	b, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("medium: read %s: %w", key, err)
	}
	return string(b), true, nil
}

func (d *Dir) Set(_ context.Context, key, value string) error {
	if err := os.WriteFile(d.path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("medium: write %s: %w", key, err)
	}
	return nil
}

func (d *Dir) Delete(_ context.Context, key string) error {
	err := os.Remove(d.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("medium: delete %s: %w", key, err)
	}
	return nil
}
