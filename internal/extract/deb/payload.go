package deb

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/ralt/pkg2nix/internal/utils"
	"github.com/sirupsen/logrus"
)

// unpackData extracts a data.tar* member into dest
func unpackData(ctx context.Context, name string, r io.Reader, dest string) error {
	dr, err := utils.DecompressReader(name, r)
	if err != nil {
		return err
	}
	defer dr.Close()

	tarReader := tar.NewReader(dr)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		target := filepath.Join(dest, header.Name)
		if target == filepath.Clean(dest) {
			continue
		}
		if !utils.WithinDir(dest, target) {
			logrus.Warnf("Skipping %s: path escapes the extraction directory", header.Name)
			continue
		}

		if err := writeEntry(tarReader, header, dest, target); err != nil {
			return fmt.Errorf("failed to extract %s: %w", header.Name, err)
		}
	}
}

func writeEntry(r io.Reader, header *tar.Header, dest, target string) error {
	mode := header.FileInfo().Mode().Perm() | 0200

	switch header.Typeflag {
	case tar.TypeDir, tar.TypeReg, tar.TypeSymlink, tar.TypeLink:
	default:
		// devices, fifos and other special files are not part of the payload we inspect
		logrus.Debugf("Skipping special file %s", header.Name)
		return nil
	}

	if !resolvesWithin(dest, filepath.Dir(target)) {
		logrus.Warnf("Skipping %s: parent directory links outside the extraction directory", header.Name)
		return nil
	}
	// a directory may reuse an in-tree link such as lib -> usr/lib
	if header.Typeflag != tar.TypeDir || !resolvesWithin(dest, target) {
		if err := removeLink(target); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	switch header.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(target, mode|0700)

	case tar.TypeReg:
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|syscall.O_NOFOLLOW, mode)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = io.Copy(out, r)
		return err

	case tar.TypeSymlink:
		os.Remove(target)
		return os.Symlink(header.Linkname, target)

	default:
		source := filepath.Join(dest, header.Linkname)
		if !utils.WithinDir(dest, source) || !resolvesWithin(dest, source) {
			logrus.Warnf("Skipping hardlink %s: target escapes the extraction directory", header.Name)
			return nil
		}
		return utils.CopyFile(source, target, mode)
	}
}

// removeLink deletes a symlink left at path by an earlier entry so the
// next write lands in the tree instead of wherever the link points
func removeLink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	return os.Remove(path)
}

// resolvesWithin reports whether path, after following symlinks created by
// earlier entries, stays inside dest. A path that does not exist yet is
// judged by its nearest existing ancestor, since that is where MkdirAll
// and OpenFile would create it.
func resolvesWithin(dest, path string) bool {
	root, err := filepath.EvalSymlinks(dest)
	if err != nil || !utils.WithinDir(dest, path) {
		return false
	}

	for p := path; ; p = filepath.Dir(p) {
		if _, err := os.Lstat(p); err != nil {
			if !os.IsNotExist(err) || p == dest || p == filepath.Dir(p) {
				return false
			}
			continue
		}
		resolved, err := filepath.EvalSymlinks(p)
		if err != nil {
			// dangling link: anything created through it escapes our checks
			return false
		}
		return utils.WithinDir(root, resolved)
	}
}
