package resolver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ralt/pkg2nix/internal/index"
	"github.com/ralt/pkg2nix/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no strategy can resolve a package name
var ErrNotFound = errors.New("not found in knowledge base or package index")

var (
	// libfoo2, libfoo-3, libfoo1.1: captures core name and trailing version
	libVersionRegexp = regexp.MustCompile(`^lib(.+?)[-.]?(\d+(?:\.\d+)*)$`)

	// trailing version-ish suffix, e.g. "2", "-1.0", "3-0"
	versionSuffixRegexp = regexp.MustCompile(`[-0-9.]+$`)
)

// GuessFilenames derives likely shared object names from a Debian package name
func GuessFilenames(name string) []string {
	if m := libVersionRegexp.FindStringSubmatch(name); m != nil {
		core, version := m[1], m[2]
		return []string{
			fmt.Sprintf("lib%s.so.%s", core, version),
			fmt.Sprintf("lib%s.so", core),
		}
	}

	if strings.HasPrefix(name, "lib") {
		return []string{name + ".so"}
	}

	return nil
}

// ResolveName resolves a declared package name: exact match, then with the
// version suffix stripped, then without the "lib" prefix, then guessed file
// names through the index.
func (r *Resolver) ResolveName(ctx context.Context, name string) (string, error) {
	if pkg, ok := r.kb.PkgForDeb(name); ok {
		return pkg, nil
	}

	cleaned := versionSuffixRegexp.ReplaceAllString(name, "")
	if cleaned != name {
		if pkg, ok := r.kb.PkgForDeb(cleaned); ok {
			return pkg, nil
		}
	}

	if withoutLib, ok := strings.CutPrefix(cleaned, "lib"); ok {
		if pkg, ok := r.kb.PkgForDeb(withoutLib); ok {
			return pkg, nil
		}
	}

	for _, filename := range GuessFilenames(name) {
		if pkg, ok := index.Lookup(ctx, r.locator, filename); ok {
			logrus.Debugf("Found %s in package %s via index", filename, pkg)
			return pkg, nil
		}
	}

	return "", fmt.Errorf("%q %w", name, ErrNotFound)
}

// ParseDepends splits Debian Depends entries into groups of alternatives,
// dropping version constraints and architecture qualifiers.
func ParseDepends(entries []string) [][]string {
	var groups [][]string
	for _, entry := range entries {
		var alternatives []string
		for _, alt := range strings.Split(entry, "|") {
			name, _, _ := strings.Cut(alt, "(")
			name, _, _ = strings.Cut(name, "[")
			name, _, _ = strings.Cut(strings.TrimSpace(name), ":")
			if name = strings.TrimSpace(name); name != "" {
				alternatives = append(alternatives, name)
			}
		}
		if len(alternatives) > 0 {
			groups = append(groups, alternatives)
		}
	}
	return groups
}

// ResolveDepends resolves declared dependencies. For each group the first
// alternative that resolves wins; groups where none resolve are returned in
// unresolved, joined with " | ".
func (r *Resolver) ResolveDepends(ctx context.Context, entries []string) (resolved []string, unresolved []string) {
	found := models.NewStringSet()

	for _, group := range ParseDepends(entries) {
		matched := false
		for _, name := range group {
			pkg, err := r.ResolveName(ctx, name)
			if err != nil {
				logrus.Debugf("Dependency search failed: %v", err)
				continue
			}
			logrus.Debugf("Dependency found: %s -> %s", name, pkg)
			found.Add(pkg)
			matched = true
			break
		}

		if !matched {
			label := strings.Join(group, " | ")
			logrus.Warnf("No package found for declared dependency %q", label)
			unresolved = append(unresolved, label)
		}
	}

	return found.Sorted(), unresolved
}
