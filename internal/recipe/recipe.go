// Package recipe renders Nix expressions for converted packages.
package recipe

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/ralt/pkg2nix/internal/models"
	"github.com/ralt/pkg2nix/internal/scanner"
)

//go:embed templates/*.nix.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("recipe").
		Funcs(template.FuncMap{"nixstr": nixString}).
		ParseFS(templateFS, "templates/*.nix.tmpl"),
)

const localHeader = "{ pkgs ? import <nixpkgs> {} }:"

// baselineInputs are linked by most Electron/GTK style .deb applications
var baselineInputs = []string{
	"alsa-lib",
	"at-spi2-core",
	"cairo",
	"cups",
	"dbus",
	"expat",
	"glib",
	"glibc",
	"gtk3",
	"libdrm",
	"libnotify",
	"libsecret",
	"libxkbcommon",
	"mesa",
	"nspr",
	"nss",
	"pango",
	"systemd",
	"xorg.libX11",
	"xorg.libXcomposite",
	"xorg.libXdamage",
	"xorg.libXext",
	"xorg.libXfixes",
	"xorg.libXrandr",
	"xorg.libxcb",
}

// libPathPackages end up on LD_LIBRARY_PATH of wrapped executables
var libPathPackages = []string{
	"libglvnd",
	"mesa",
	"libdrm",
	"vulkan-loader",
	"libxkbcommon",
	"gtk3",
	"alsa-lib",
	"nss",
	"nspr",
	"expat",
	"dbus",
	"at-spi2-core",
	"pango",
	"cairo",
	"libsecret",
	"libnotify",
	"systemd",
}

// arguments every upstream recipe of a kind takes, before its dependencies
var builtinArgs = map[scanner.PackageType][]string{
	scanner.TypeDeb:      {"lib", "stdenv", "fetchurl", "dpkg", "autoPatchelfHook", "makeWrapper"},
	scanner.TypeAppImage: {"lib", "appimageTools", "fetchurl"},
}

var systemPrefix = regexp.MustCompile(`^legacyPackages\.[^.]+\.`)

// Input is everything a recipe is rendered from
type Input struct {
	Type     scanner.PackageType
	Meta     models.PackageMetadata
	URL      string
	SHA256   string
	Packages []string

	// Upstream renders a callPackage-style expression suitable for nixpkgs
	Upstream bool
}

type view struct {
	Header      string
	P           string
	Name        string
	Version     string
	URL         string
	SHA256      string
	Description string
	Homepage    string
	Arch        string
	Inputs      []string
	LibPath     []string
}

// Render produces the Nix expression for in
func Render(in Input) ([]byte, error) {
	var name string
	var inputs []string

	switch in.Type {
	case scanner.TypeDeb:
		name = "deb.nix.tmpl"
		inputs = BuildInputs(baselineInputs, in.Packages)
	case scanner.TypeAppImage:
		name = "appimage.nix.tmpl"
		inputs = BuildInputs(nil, in.Packages)
	default:
		return nil, fmt.Errorf("no recipe template for %s", in.Type)
	}

	v := view{
		Header:      localHeader,
		P:           "pkgs.",
		Name:        in.Meta.Name,
		Version:     in.Meta.Version,
		URL:         in.URL,
		SHA256:      in.SHA256,
		Description: in.Meta.Description,
		Homepage:    in.Meta.Homepage,
		Arch:        in.Meta.Architecture,
		Inputs:      inputs,
	}
	if in.Type == scanner.TypeDeb {
		v.LibPath = libPathPackages
	}

	if in.Upstream {
		v.P = ""
		v.Header = upstreamHeader(builtinArgs[in.Type], v.Inputs, v.LibPath)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, v); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// BuildInputs merges base with the cleaned resolved package paths,
// deduplicated and sorted
func BuildInputs(base, resolved []string) []string {
	set := models.NewStringSet(base...)
	for _, p := range resolved {
		if p = CleanPackagePath(p); p != "" {
			set.Add(p)
		}
	}
	return set.Sorted()
}

// CleanPackagePath removes evaluation prefixes that are not valid inside a
// recipe, e.g. "legacyPackages.x86_64-linux.xorg.libX11" becomes "xorg.libX11"
func CleanPackagePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "pkgs.")
	return systemPrefix.ReplaceAllString(p, "")
}

// upstreamHeader lists the builtin arguments followed by the top-level
// attribute of every referenced package
func upstreamHeader(builtin []string, groups ...[]string) string {
	seen := models.NewStringSet(builtin...)
	deps := models.NewStringSet()
	for _, group := range groups {
		for _, p := range group {
			top, _, _ := strings.Cut(p, ".")
			if !seen.Has(top) {
				deps.Add(top)
			}
		}
	}

	args := append(append([]string{}, builtin...), deps.Sorted()...)

	var b strings.Builder
	b.WriteString("{\n")
	for _, arg := range args {
		fmt.Fprintf(&b, "  %s,\n", arg)
	}
	b.WriteString("}:")
	return b.String()
}

// nixString escapes s for use inside a double-quoted Nix string
func nixString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"${", `\${`,
		"\n", `\n`,
		"\r", "",
		"\t", `\t`,
	)
	return r.Replace(s)
}

