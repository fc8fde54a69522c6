package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

const (
	defaultFileName = "libraries.json"
	xdgRelPath      = "pkg2nix/libraries.yaml"
)

// Loader loads a knowledge base at most once and caches the outcome,
// falling back to Default on any read or parse failure.
type Loader struct {
	paths []string

	once   sync.Once
	base   *Base
	source string
}

// NewLoader creates a loader. A non-empty explicit path is the only
// candidate; otherwise SearchPaths is used.
func NewLoader(explicit string) *Loader {
	if explicit != "" {
		return &Loader{paths: []string{explicit}}
	}
	return &Loader{paths: SearchPaths()}
}

// SearchPaths lists the knowledge base locations tried in order
func SearchPaths() []string {
	paths := []string{
		"libraries.yaml",
		defaultFileName,
		filepath.Join("..", defaultFileName),
	}
	if p, err := xdg.SearchConfigFile(xdgRelPath); err == nil {
		paths = append(paths, p)
	}
	return paths
}

// Load returns the cached knowledge base, loading it on first use
func (l *Loader) Load() *Base {
	l.once.Do(func() {
		base, source, err := l.load()
		if err != nil {
			logrus.Warnf("Failed to load libraries config: %v. Using defaults.", err)
			base, source = Default(), "defaults"
		}
		l.base, l.source = base, source

		sys, libs, debs := base.Stats()
		logrus.Debugf("Knowledge base from %s: %d system libs, %d library mappings, %d package mappings",
			source, sys, libs, debs)
	})
	return l.base
}

// Source reports where the cached knowledge base came from
func (l *Loader) Source() string {
	l.Load()
	return l.source
}

func (l *Loader) load() (*Base, string, error) {
	path := l.find()
	if path == "" {
		return nil, "", fmt.Errorf("no knowledge base file found in %v", l.paths)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	base, err := Parse(path, data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return base, path, nil
}

func (l *Loader) find() string {
	for _, p := range l.paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
