package scanner

import (
	"context"

	"github.com/ralt/pkg2nix/internal/models"
)

// PackageType represents the type of package
type PackageType int

const (
	TypeUnknown PackageType = iota
	TypeDeb
	TypeAppImage
)

// String returns the string representation of PackageType
func (pt PackageType) String() string {
	switch pt {
	case TypeDeb:
		return "deb"
	case TypeAppImage:
		return "appimage"
	default:
		return "unknown"
	}
}

// Result holds everything learned about an extracted payload
type Result struct {
	// Required is the set of shared objects demanded by any binary in the tree
	Required models.StringSet

	// Bundled is the set of file names physically present in the tree
	Bundled models.StringSet
}

// NeededReader lists the shared objects a single file requires.
// Failures must be reported as an empty list.
type NeededReader interface {
	Needed(ctx context.Context, path string) []string
}

// Scanner interface for inspecting an extracted package tree
type Scanner interface {
	// Scan walks root and collects required and bundled libraries
	Scan(ctx context.Context, root string) (*Result, error)
}
