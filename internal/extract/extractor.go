// Package extract unpacks foreign package archives into a directory tree.
package extract

import (
	"context"

	"github.com/ralt/pkg2nix/internal/models"
)

// Extractor unpacks an archive payload into destDir and returns its metadata.
// destDir is owned by the caller, who is responsible for removing it.
type Extractor interface {
	Extract(ctx context.Context, archivePath, destDir string) (*models.PackageMetadata, error)
}
