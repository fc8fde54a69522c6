package models

// PackageMetadata holds the top-level fields of a foreign package
type PackageMetadata struct {
	Name         string
	Version      string
	Architecture string
	Description  string
	Maintainer   string
	Homepage     string

	// Depends holds the raw comma-separated entries of the Depends field
	// (Debian only), e.g. "libgtk-3-0 (>= 3.21.4)" or "libcurl4 | libcurl3-gnutls".
	Depends []string
}

// architectures maps source-ecosystem architecture codes to Nix systems
var architectures = map[string]string{
	"amd64": "x86_64-linux",
	"arm64": "aarch64-linux",
}

// NormalizeArchitecture converts a Debian architecture code into a Nix
// system double. Unknown codes are returned unchanged.
func NormalizeArchitecture(code string) string {
	if system, ok := architectures[code]; ok {
		return system
	}
	return code
}
