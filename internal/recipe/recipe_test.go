package recipe

import (
	"strings"
	"testing"

	"github.com/ralt/pkg2nix/internal/models"
	"github.com/ralt/pkg2nix/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput(t scanner.PackageType) Input {
	return Input{
		Type: t,
		Meta: models.PackageMetadata{
			Name:         "foo",
			Version:      "1.2.3",
			Architecture: "x86_64-linux",
			Description:  `Foo "the" tool ${evil}`,
			Homepage:     "https://example.com",
		},
		URL:      "https://example.com/foo_1.2.3_amd64.deb",
		SHA256:   "0mdqa9w1p6cmli6976v4wi0sw9r4p5prkj7lzfd1877wk11c9c73",
		Packages: []string{"legacyPackages.x86_64-linux.openssl", "xorg.libXtst", "gtk3", "qt6.qtbase"},
	}
}

func TestRenderDebLocal(t *testing.T) {
	out, err := Render(sampleInput(scanner.TypeDeb))
	require.NoError(t, err)
	nix := string(out)

	assert.True(t, strings.HasPrefix(nix, "{ pkgs ? import <nixpkgs> {} }:\n"))
	assert.Contains(t, nix, `pname = "foo";`)
	assert.Contains(t, nix, `version = "1.2.3";`)
	assert.Contains(t, nix, `url = "https://example.com/foo_1.2.3_amd64.deb";`)
	assert.Contains(t, nix, `sha256 = "0mdqa9w1p6cmli6976v4wi0sw9r4p5prkj7lzfd1877wk11c9c73";`)
	assert.Contains(t, nix, "    pkgs.openssl\n")
	assert.Contains(t, nix, "    pkgs.xorg.libXtst\n")
	assert.Contains(t, nix, "    pkgs.alsa-lib\n")
	assert.Contains(t, nix, "            pkgs.vulkan-loader\n")
	assert.Contains(t, nix, `description = "Foo \"the\" tool \${evil}";`)
	assert.NotContains(t, nix, "legacyPackages")

	// gtk3 is both a baseline input and a resolved package
	assert.Equal(t, 1, strings.Count(nix, "\n    pkgs.gtk3\n"))
}

func TestRenderDebUpstream(t *testing.T) {
	in := sampleInput(scanner.TypeDeb)
	in.Upstream = true

	out, err := Render(in)
	require.NoError(t, err)
	nix := string(out)

	assert.True(t, strings.HasPrefix(nix, "{\n  lib,\n  stdenv,\n  fetchurl,\n  dpkg,\n  autoPatchelfHook,\n  makeWrapper,\n"))
	assert.Contains(t, nix, "  xorg,\n")
	assert.Contains(t, nix, "  qt6,\n")
	assert.Contains(t, nix, "  vulkan-loader,\n")
	assert.Equal(t, 1, strings.Count(nix, "  lib,\n"))
	assert.Contains(t, nix, "\nstdenv.mkDerivation {")
	assert.Contains(t, nix, "    xorg.libXtst\n")
	assert.NotContains(t, nix, "pkgs.")
}

func TestRenderAppImage(t *testing.T) {
	in := sampleInput(scanner.TypeAppImage)
	in.Meta.Homepage = ""

	out, err := Render(in)
	require.NoError(t, err)
	nix := string(out)

	assert.Contains(t, nix, "pkgs.appimageTools.wrapType2 {")
	assert.Contains(t, nix, "    pkgs.openssl\n")
	assert.NotContains(t, nix, "pkgs.alsa-lib")
	assert.NotContains(t, nix, "homepage")
	assert.Contains(t, nix, `mainProgram = "foo";`)
}

func TestRenderMissingFields(t *testing.T) {
	out, err := Render(Input{Type: scanner.TypeDeb})
	require.NoError(t, err)
	nix := string(out)

	assert.Contains(t, nix, `pname = "";`)
	assert.Contains(t, nix, `sha256 = "";`)
	assert.Contains(t, nix, `platforms = [ "" ];`)
}

func TestRenderUnknownType(t *testing.T) {
	_, err := Render(Input{Type: scanner.TypeUnknown})
	assert.Error(t, err)
}

func TestCleanPackagePath(t *testing.T) {
	assert.Equal(t, "xorg.libX11", CleanPackagePath("legacyPackages.x86_64-linux.xorg.libX11"))
	assert.Equal(t, "openssl", CleanPackagePath("legacyPackages.aarch64-linux.openssl"))
	assert.Equal(t, "zlib", CleanPackagePath(" pkgs.zlib "))
	assert.Equal(t, "qt6.qtbase", CleanPackagePath("qt6.qtbase"))
}

func TestBuildInputs(t *testing.T) {
	got := BuildInputs([]string{"glibc", "gtk3"}, []string{"gtk3", "", "legacyPackages.x86_64-linux.zlib"})
	assert.Equal(t, []string{"glibc", "gtk3", "zlib"}, got)
}

func TestNixString(t *testing.T) {
	assert.Equal(t, `a\\b\"c\${d}\ne`, nixString("a\\b\"c${d}\ne"))
}
