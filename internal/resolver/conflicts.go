package resolver

import (
	"sort"
	"strings"
)

// Exclusion declares two mutually exclusive package families. When both are
// present, every package of the Older family is dropped.
type Exclusion struct {
	Name  string
	Newer []string // attribute path prefixes of the preferred family
	Older []string // attribute path prefixes of the superseded family
}

// DefaultExclusions is the built-in rule table
var DefaultExclusions = []Exclusion{
	{
		Name:  "Qt",
		Newer: []string{"qt6.", "qt6Packages.", "kdePackages."},
		Older: []string{"qt5.", "libsForQt5."},
	},
}

// Reconcile removes superseded alternatives from a resolved package list.
// It returns the kept and dropped packages, both sorted.
func Reconcile(resolved []string, rules []Exclusion) (kept []string, dropped []string) {
	drop := make(map[string]bool)
	for _, rule := range rules {
		if !anyHasPrefix(resolved, rule.Newer) || !anyHasPrefix(resolved, rule.Older) {
			continue
		}
		for _, pkg := range resolved {
			if hasAnyPrefix(pkg, rule.Older) {
				drop[pkg] = true
			}
		}
	}

	for _, pkg := range resolved {
		if drop[pkg] {
			dropped = append(dropped, pkg)
		} else {
			kept = append(kept, pkg)
		}
	}

	sort.Strings(kept)
	sort.Strings(dropped)
	return kept, dropped
}

func anyHasPrefix(pkgs []string, prefixes []string) bool {
	for _, pkg := range pkgs {
		if hasAnyPrefix(pkg, prefixes) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(pkg string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(pkg, p) {
			return true
		}
	}
	return false
}
