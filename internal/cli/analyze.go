package cli

import (
	"context"
	"fmt"

	"github.com/ralt/pkg2nix/internal/models"
	"github.com/ralt/pkg2nix/internal/resolver"
	"github.com/ralt/pkg2nix/internal/scanner"
	"github.com/sirupsen/logrus"
)

// implicitDebPackages are needed by practically every desktop .deb but
// rarely show up as a resolvable DT_NEEDED entry
var implicitDebPackages = []string{
	"glibc",
	"libgcc",
	"libglvnd",
	"mesa",
	"libdrm",
	"vulkan-loader",
}

type analysis struct {
	Resolved   []string
	Missing    []string
	Dropped    []string
	Unresolved []string
}

// analyze scans the extracted tree and resolves everything it requires
func analyze(ctx context.Context, kind scanner.PackageType, meta *models.PackageMetadata, root string, sc scanner.Scanner, res *resolver.Resolver) (*analysis, error) {
	logrus.Info("Scanning binaries...")
	scan, err := sc.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	logrus.Infof("Found %d required libraries, %d bundled files", len(scan.Required), len(scan.Bundled))

	libs := res.Resolve(ctx, scan.Required, scan.Bundled)

	all := models.NewStringSet(libs.Resolved...)
	result := &analysis{Missing: libs.Missing}

	if kind == scanner.TypeDeb {
		for _, pkg := range implicitDebPackages {
			all.Add(pkg)
		}

		declared, unresolved := res.ResolveDepends(ctx, meta.Depends)
		for _, pkg := range declared {
			all.Add(pkg)
		}
		result.Unresolved = unresolved
	}

	result.Resolved, result.Dropped = resolver.Reconcile(all.Sorted(), resolver.DefaultExclusions)
	for _, pkg := range result.Dropped {
		logrus.Infof("Dropped %s in favour of a newer toolkit", pkg)
	}

	logrus.Infof("Resolved %d packages, %d libraries missing", len(result.Resolved), len(result.Missing))
	return result, nil
}
