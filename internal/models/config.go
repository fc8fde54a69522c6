package models

// ConvertConfig contains configuration for a single conversion run
type ConvertConfig struct {
	// Input is a URL or local path to a .deb or .AppImage archive
	Input string

	// OutputPath is where the generated recipe is written
	OutputPath string

	// SkipDeps disables dependency scanning and resolution
	SkipDeps bool

	// KnowledgeBasePath overrides knowledge base discovery
	KnowledgeBasePath string

	// NeededTool selects the binary introspection backend ("native" or "patchelf")
	NeededTool string

	// Upstream renders a callPackage-style recipe instead of a standalone one
	Upstream bool

	// Signature verification
	SignaturePath string
	KeyringPath   string

	// Post-generation steps
	Build       bool   // Run nix-build on the written recipe
	NixpkgsPath string // Local nixpkgs checkout to open a pull request against
}
