// Package appimage unpacks AppImage bundles.
package appimage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/diskfs/go-diskfs/backend/file"
	"github.com/diskfs/go-diskfs/filesystem/squashfs"
	"github.com/ralt/pkg2nix/internal/elfdeps"
	"github.com/ralt/pkg2nix/internal/execx"
	"github.com/ralt/pkg2nix/internal/models"
	"github.com/ralt/pkg2nix/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	fallbackName    = "generated-app"
	fallbackVersion = "1.0.0"
)

var tokenSplit = regexp.MustCompile(`[-_]`)

// Extractor implements extract.Extractor for AppImage files
type Extractor struct {
	runner execx.Runner
}

// NewExtractor creates an AppImage extractor. The runner is used when the
// payload cannot be read natively and the bundle has to extract itself.
func NewExtractor(r execx.Runner) *Extractor {
	return &Extractor{runner: r}
}

// Extract unpacks the squashfs payload into destDir
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) (*models.PackageMetadata, error) {
	meta := MetadataFromFilename(archivePath)
	if arch, ok := elfdeps.Machine(archivePath); ok {
		meta.Architecture = arch
	}

	if err := extractSquashfs(archivePath, destDir); err != nil {
		logrus.Warnf("Native squashfs extraction failed (%v), falling back to --appimage-extract", err)
		if err := os.RemoveAll(destDir); err != nil {
			return nil, err
		}
		if err := e.selfExtract(ctx, archivePath, destDir); err != nil {
			return nil, err
		}
	}

	return meta, nil
}

// MetadataFromFilename derives name and version from an AppImage file name:
// the first token starting with a digit is the version and the tokens before
// it form the name, so "Foo_Bar-1.2.3-x86_64.AppImage" is foo-bar 1.2.3.
func MetadataFromFilename(p string) *models.PackageMetadata {
	stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))

	meta := &models.PackageMetadata{
		Name:         fallbackName,
		Version:      fallbackVersion,
		Architecture: "x86_64-linux",
	}

	var name []string
	for _, token := range tokenSplit.Split(stem, -1) {
		if token == "" {
			continue
		}
		if token[0] >= '0' && token[0] <= '9' {
			meta.Version = token
			break
		}
		name = append(name, token)
	}
	if len(name) > 0 {
		meta.Name = strings.ToLower(strings.Join(name, "-"))
	}

	return meta
}

func extractSquashfs(archivePath, destDir string) error {
	offset, err := PayloadOffset(archivePath)
	if err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	fs, err := squashfs.Read(file.New(f, true), info.Size()-offset, offset, 0)
	if err != nil {
		return fmt.Errorf("failed to read squashfs: %w", err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}
	return copyTree(fs, "/", destDir)
}

func copyTree(fs *squashfs.FileSystem, dir, destDir string) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}

	for _, entry := range entries {
		src := path.Join(dir, entry.Name())
		target := filepath.Join(destDir, filepath.FromSlash(src))
		if !utils.WithinDir(destDir, target) {
			logrus.Warnf("Skipping %s: path escapes the extraction directory", src)
			continue
		}

		if entry.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			if err := copyTree(fs, src, destDir); err != nil {
				return err
			}
			continue
		}

		mode := entryMode(entry)
		switch {
		case mode&os.ModeSymlink != 0:
			link, ok := linkTarget(entry)
			if !ok {
				return fmt.Errorf("cannot read symlink %s", src)
			}
			if err := os.Symlink(link, target); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := copyFile(fs, src, target, mode.Perm()|0200); err != nil {
				return fmt.Errorf("failed to copy %s: %w", src, err)
			}
		default:
			logrus.Debugf("Skipping special file %s", src)
		}
	}

	return nil
}

// entryMode reads the mode from either an os.FileInfo or an fs.DirEntry
func entryMode(entry any) os.FileMode {
	switch e := entry.(type) {
	case interface{ Mode() os.FileMode }:
		return e.Mode()
	case interface{ Type() os.FileMode }:
		return e.Type() | 0644
	default:
		return 0644
	}
}

// linkTarget reads a symlink target from a squashfs entry or its Sys() value
func linkTarget(entry any) (string, bool) {
	type readlinker interface {
		Readlink() (string, error)
	}

	if l, ok := entry.(readlinker); ok {
		if target, err := l.Readlink(); err == nil {
			return target, true
		}
	}
	if fi, ok := entry.(interface{ Sys() any }); ok {
		if l, ok := fi.Sys().(readlinker); ok {
			if target, err := l.Readlink(); err == nil {
				return target, true
			}
		}
	}
	return "", false
}

func copyFile(fs *squashfs.FileSystem, src, target string, perm os.FileMode) error {
	in, err := fs.OpenFile(src, os.O_RDONLY)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// selfExtract runs the bundle's own runtime with --appimage-extract
func (e *Extractor) selfExtract(ctx context.Context, archivePath, destDir string) error {
	work, err := os.MkdirTemp(filepath.Dir(destDir), "appimage-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(work)

	exe := filepath.Join(work, "bundle.AppImage")
	if err := utils.CopyFile(archivePath, exe, 0755); err != nil {
		return err
	}

	if _, err := e.runner.Run(ctx, execx.Command{
		Name: exe,
		Args: []string{"--appimage-extract"},
		Dir:  work,
	}); err != nil {
		return fmt.Errorf("--appimage-extract failed: %w", err)
	}

	return os.Rename(filepath.Join(work, "squashfs-root"), destDir)
}
