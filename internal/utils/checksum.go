package utils

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"

	"github.com/nix-community/go-nix/pkg/nixbase32"
)

// Checksum contains the SHA-256 of a file in the encodings Nix accepts
type Checksum struct {
	SHA256 string // hex
	Nix32  string // nix-prefetch-url format
	SRI    string // sha256-<base64>
	Size   int64
}

// CalculateChecksums hashes a file in a single pass
func CalculateChecksums(path string) (*Checksum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	sum := h.Sum(nil)

	return &Checksum{
		SHA256: hex.EncodeToString(sum),
		Nix32:  NixBase32(sum),
		SRI:    "sha256-" + base64.StdEncoding.EncodeToString(sum),
		Size:   info.Size(),
	}, nil
}

// NixBase32 encodes a digest the way Nix prints hashes
func NixBase32(digest []byte) string {
	return nixbase32.EncodeToString(digest)
}
