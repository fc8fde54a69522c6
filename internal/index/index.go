// Package index looks up which nixpkgs attribute ships a given file.
package index

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ralt/pkg2nix/internal/execx"
	"github.com/sirupsen/logrus"
)

const nixLocate = "nix-locate"

// ErrUnavailable is returned when the index tool is not installed
var ErrUnavailable = errors.New("nix-locate is not available")

// outputSuffixes are derivation outputs stripped from attribute paths
var outputSuffixes = map[string]bool{
	"out": true,
	"lib": true,
	"bin": true,
	"dev": true,
}

// Locator finds candidate attribute paths for a file name
type Locator interface {
	Locate(ctx context.Context, filename string) ([]string, error)
}

// NixLocate queries a nix-index database through the nix-locate CLI
type NixLocate struct {
	runner execx.Runner

	once      sync.Once
	available bool
}

// NewNixLocate creates a nix-locate backed locator
func NewNixLocate(r execx.Runner) *NixLocate {
	return &NixLocate{runner: r}
}

// Available reports whether nix-locate can be run; absence is logged once
func (n *NixLocate) Available() bool {
	n.once.Do(func() {
		_, err := n.runner.LookPath(nixLocate)
		n.available = err == nil
		if !n.available {
			logrus.Warn("nix-locate not found, resolving with the knowledge base only")
		}
	})
	return n.available
}

// Locate returns the raw candidate lines for a file name
func (n *NixLocate) Locate(ctx context.Context, filename string) ([]string, error) {
	if !n.Available() {
		return nil, ErrUnavailable
	}

	out, err := n.runner.Run(ctx, execx.Command{
		Name: nixLocate,
		Args: []string{"--top-level", "--minimal", "--whole-name", filename},
	})
	if err != nil {
		// nix-locate exits non-zero when nothing matches
		logrus.Debugf("nix-locate %s: %v", filename, err)
		return nil, nil
	}
	return execx.Lines(out), nil
}

// PickCandidate applies the tie-break rules to locator output: lines carrying
// a parenthesized annotation (alternate outputs) are ignored and the first
// remaining line is cleaned into an attribute path.
func PickCandidate(lines []string) (string, bool) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "(") {
			continue
		}
		if attr := CleanAttrPath(line); attr != "" {
			return attr, true
		}
	}
	return "", false
}

// CleanAttrPath strips channel prefixes and a trailing output suffix from a
// dotted attribute path, e.g. "nixpkgs.zlib.out" -> "zlib".
func CleanAttrPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "pkgs.")
	p = strings.TrimPrefix(p, "nixpkgs.")

	if rest, ok := strings.CutPrefix(p, "legacyPackages."); ok {
		// drop the system segment, e.g. "x86_64-linux."
		if _, after, found := strings.Cut(rest, "."); found {
			p = after
		} else {
			return ""
		}
	}

	parts := strings.Split(p, ".")
	if len(parts) > 1 && outputSuffixes[parts[len(parts)-1]] {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

// Lookup runs a locator and picks the best candidate. A nil locator or an
// unavailable tool yields no result.
func Lookup(ctx context.Context, l Locator, filename string) (string, bool) {
	if l == nil {
		return "", false
	}
	lines, err := l.Locate(ctx, filename)
	if err != nil {
		return "", false
	}
	return PickCandidate(lines)
}
