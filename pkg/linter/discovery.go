package linter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discoverer enumerates lintable files under a project root.
type Discoverer struct {
	Directories []string
	Extensions  []string
	Exclude     []string
	Logger      *slog.Logger
}

// Discover walks every configured directory under root and returns the
// absolute paths of files with a configured extension, sorted and without
// duplicates. Missing directories are skipped; any walk error is fatal.
func (d *Discoverer) Discover(root string) ([]string, error) {
	for _, pattern := range d.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	seen := make(map[string]bool)
	var files []string

	for _, dir := range d.Directories {
		start := filepath.Join(absRoot, filepath.FromSlash(dir))

		info, err := os.Stat(start)
		if errors.Is(err, fs.ErrNotExist) {
			d.logger().Debug("skipping missing directory", "dir", dir)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
		}
		if !info.IsDir() {
			d.logger().Debug("skipping non-directory root", "dir", dir)
			continue
		}

		err = filepath.WalkDir(start, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.excluded(absRoot, path) {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if entry.IsDir() || !d.hasExtension(path) || seen[path] {
				return nil
			}

			seen[path] = true
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether path, a file under root, would be discovered.
func (d *Discoverer) Matches(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil || !d.hasExtension(path) {
		return false
	}
	rel, ok := d.relativeTo(absRoot, path)
	if !ok {
		return false
	}

	inDir := false
	for _, dir := range d.Directories {
		dir = strings.TrimSuffix(filepath.ToSlash(filepath.Clean(dir)), "/")
		if dir == "." || rel == dir || strings.HasPrefix(rel, dir+"/") {
			inDir = true
			break
		}
	}
	if !inDir {
		return false
	}

	// Excluded ancestors exclude the file too.
	for p := path; p != absRoot && p != filepath.Dir(p); p = filepath.Dir(p) {
		if d.excluded(absRoot, p) {
			return false
		}
	}
	return true
}

// Excluded reports whether path matches an exclude glob.
func (d *Discoverer) excluded(absRoot, path string) bool {
	rel, ok := d.relativeTo(absRoot, path)
	if !ok {
		return false
	}
	for _, pattern := range d.Exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (d *Discoverer) relativeTo(absRoot, path string) (string, bool) {
	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (d *Discoverer) hasExtension(path string) bool {
	for _, ext := range d.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func (d *Discoverer) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
