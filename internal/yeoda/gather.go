package yeoda

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Discoverer finds yeoda files below a root directory.
type Discoverer interface {
	// Discover walks one directory level per pattern and parses the files
	// found in the matching leaf directories. The returned table is indexed
	// by index.
	Discover(root string, patterns []*regexp.Regexp, index Field) (*Table, error)
}

// FileSystem discovers files on the local file system.
type FileSystem struct {
	logger *slog.Logger
}

// NewFileSystem creates a new file system discoverer.
func NewFileSystem(logger *slog.Logger) *FileSystem {
	return &FileSystem{logger: logger}
}

// Discover implements Discoverer.
func (fs *FileSystem) Discover(root string, patterns []*regexp.Regexp, index Field) (*Table, error) {
	dirs := []string{root}
	for _, re := range patterns {
		var next []string
		for _, dir := range dirs {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", dir, err)
			}
			for _, e := range entries {
				if e.IsDir() && re.MatchString(e.Name()) {
					next = append(next, filepath.Join(dir, e.Name()))
				}
			}
		}
		dirs = next
	}

	t := &Table{Index: index}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			r, err := ParseFilename(filepath.Join(dir, e.Name()))
			if err != nil {
				fs.logger.Debug("skipping file", "dir", dir, "err", err)
				continue
			}
			t.Rows = append(t.Rows, r)
		}
	}
	sort.Slice(t.Rows, func(i, j int) bool { return t.Rows[i].Path < t.Rows[j].Path })
	fs.logger.Debug("discovered files", "root", root, "dirs", len(dirs), "files", len(t.Rows))
	return t, nil
}
