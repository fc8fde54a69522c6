package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/pkg2nix/internal/models"
	"github.com/ralt/pkg2nix/internal/utils"
	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner by walking an extracted tree on disk
type FileSystemScanner struct {
	needed NeededReader
}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner(needed NeededReader) *FileSystemScanner {
	return &FileSystemScanner{needed: needed}
}

// Scan recursively walks root. Unreadable entries are skipped and symlinks
// are never followed into, so cycles cannot occur.
func (s *FileSystemScanner) Scan(ctx context.Context, root string) (*Result, error) {
	result := &Result{
		Required: models.NewStringSet(),
		Bundled:  models.NewStringSet(),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		switch {
		case d.Type().IsRegular():
			result.Bundled.Add(d.Name())
			for _, lib := range s.needed.Needed(ctx, path) {
				if lib = strings.TrimSpace(lib); lib != "" {
					result.Required.Add(lib)
				}
			}
		case d.Type()&fs.ModeSymlink != 0:
			// A soname symlink counts as bundled when it lands on a regular
			// file inside the tree.
			if bundledLink(root, path) {
				result.Bundled.Add(d.Name())
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	logrus.Debugf("Scanned %s: %d required libraries, %d bundled files",
		root, len(result.Required), len(result.Bundled))
	return result, nil
}

func bundledLink(root, path string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return false
	}

	if !utils.WithinDir(realRoot, resolved) {
		return false
	}

	info, err := os.Stat(resolved)
	return err == nil && info.Mode().IsRegular()
}
