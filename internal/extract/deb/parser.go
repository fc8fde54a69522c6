package deb

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ralt/pkg2nix/internal/models"
	"github.com/sirupsen/logrus"
)

// Extractor implements extract.Extractor for Debian packages
type Extractor struct{}

// NewExtractor creates a new Debian extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ParsePackage reads only the control metadata of a .deb file
func ParsePackage(path string) (*models.PackageMetadata, error) {
	var control []byte
	err := walkMembers(path, func(name string, r io.Reader) (bool, error) {
		if !strings.HasPrefix(name, "control.tar") {
			return false, nil
		}
		data, err := readControl(name, r)
		control = data
		return true, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract control: %w", err)
	}
	if control == nil {
		return nil, fmt.Errorf("control.tar not found in package")
	}

	meta, err := parseControl(control)
	if err != nil {
		return nil, fmt.Errorf("failed to parse control: %w", err)
	}
	normalize(meta)
	return meta, nil
}

// Extract reads the control metadata and unpacks data.tar into destDir
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) (*models.PackageMetadata, error) {
	var control []byte
	dataFound := false

	err := walkMembers(archivePath, func(name string, r io.Reader) (bool, error) {
		switch {
		case strings.HasPrefix(name, "control.tar"):
			data, err := readControl(name, r)
			if err != nil {
				return true, fmt.Errorf("failed to extract control: %w", err)
			}
			control = data

		case strings.HasPrefix(name, "data.tar"):
			logrus.Debugf("Unpacking %s into %s", name, destDir)
			if err := unpackData(ctx, name, r, destDir); err != nil {
				return true, err
			}
			dataFound = true
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	if control == nil {
		return nil, fmt.Errorf("control.tar not found in package")
	}
	if !dataFound {
		return nil, fmt.Errorf("data.tar not found in package")
	}

	meta, err := parseControl(control)
	if err != nil {
		return nil, fmt.Errorf("failed to parse control: %w", err)
	}
	normalize(meta)
	return meta, nil
}
