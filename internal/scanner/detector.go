package scanner

import (
	"bytes"
	"io"
	"os"
)

// Magic bytes for package detection
var (
	// Debian packages are ar archives
	debMagic = []byte("!<arch>")

	// AppImages are ELF executables carrying a squashfs payload
	elfMagic = []byte{0x7F, 'E', 'L', 'F'}
)

// DetectPackageType determines the package type from its leading bytes
func DetectPackageType(path string) (PackageType, error) {
	f, err := os.Open(path)
	if err != nil {
		return TypeUnknown, err
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(f, header)
	if err != nil && n == 0 {
		return TypeUnknown, err
	}

	return DetectBytes(header[:n]), nil
}

// DetectBytes determines the package type from a leading byte signature
func DetectBytes(header []byte) PackageType {
	switch {
	case bytes.HasPrefix(header, debMagic):
		return TypeDeb
	case bytes.HasPrefix(header, elfMagic):
		return TypeAppImage
	default:
		return TypeUnknown
	}
}
