package resolver

import (
	"context"
	"sort"

	"github.com/ralt/pkg2nix/internal/index"
	"github.com/ralt/pkg2nix/internal/knowledge"
	"github.com/ralt/pkg2nix/internal/models"
	"github.com/sirupsen/logrus"
)

// Resolver maps foreign dependencies onto nixpkgs attribute paths
type Resolver struct {
	kb      *knowledge.Base
	locator index.Locator
}

// Result is the outcome of resolving a set of required libraries.
// Both slices are sorted.
type Result struct {
	Resolved []string
	Missing  []string
}

// New creates a resolver. locator may be nil for knowledge-base-only resolution.
func New(kb *knowledge.Base, locator index.Locator) *Resolver {
	return &Resolver{kb: kb, locator: locator}
}

// Resolve decides for each required library whether it is part of the host
// baseline, explicitly known, bundled, findable in the index, or missing.
// An explicit mapping wins over a bundled copy.
func (r *Resolver) Resolve(ctx context.Context, required, bundled models.StringSet) *Result {
	resolved := models.NewStringSet()
	var missing []string

	for _, lib := range required.Sorted() {
		if r.kb.IsSystemLib(lib) {
			logrus.Debugf("%s: system library, skipped", lib)
			continue
		}

		if pkg, ok := r.kb.PkgForLib(lib); ok {
			logrus.Debugf("%s: knowledge base -> %s", lib, pkg)
			resolved.Add(pkg)
			continue
		}

		if bundled.Has(lib) {
			logrus.Debugf("%s: bundled, skipped", lib)
			continue
		}

		if pkg, ok := index.Lookup(ctx, r.locator, lib); ok {
			logrus.Debugf("%s: index -> %s", lib, pkg)
			resolved.Add(pkg)
			continue
		}

		missing = append(missing, lib)
	}

	sort.Strings(missing)
	return &Result{
		Resolved: resolved.Sorted(),
		Missing:  missing,
	}
}
