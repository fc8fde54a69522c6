// Package knowledge holds the static tables used to map foreign library and
// package names onto nixpkgs attribute paths.
//
// A knowledge base file, when found, replaces the compiled-in defaults as a
// whole; its tables are never merged key by key with the defaults.
package knowledge

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/ralt/pkg2nix/internal/models"
	"gopkg.in/yaml.v3"
)

// Base is an immutable view over the knowledge tables
type Base struct {
	systemLibs models.StringSet
	libToPkg   map[string]string
	debToPkg   map[string]string
}

// document is the on-disk format (YAML or JSON)
type document struct {
	SystemLibs []string          `json:"system_libs" yaml:"system_libs"`
	LibToPkg   map[string]string `json:"lib_to_pkg_map" yaml:"lib_to_pkg_map"`
	DebToPkg   map[string]string `json:"deb_to_pkg_map" yaml:"deb_to_pkg_map"`
}

// New builds a knowledge base from explicit tables. Inputs are copied.
func New(systemLibs []string, libToPkg, debToPkg map[string]string) *Base {
	b := &Base{
		systemLibs: models.NewStringSet(systemLibs...),
		libToPkg:   make(map[string]string, len(libToPkg)),
		debToPkg:   make(map[string]string, len(debToPkg)),
	}
	maps.Copy(b.libToPkg, libToPkg)
	maps.Copy(b.debToPkg, debToPkg)
	return b
}

// Default returns the compiled-in knowledge base
func Default() *Base {
	return New(defaultSystemLibs, defaultLibToPkg, defaultDebToPkg)
}

// Parse decodes a knowledge base document. Files named *.json are decoded
// as JSON, anything else as YAML.
func Parse(name string, data []byte) (*Base, error) {
	var doc document
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if len(doc.SystemLibs) == 0 && len(doc.LibToPkg) == 0 && len(doc.DebToPkg) == 0 {
		return nil, fmt.Errorf("document defines no system_libs, lib_to_pkg_map or deb_to_pkg_map")
	}

	return New(doc.SystemLibs, doc.LibToPkg, doc.DebToPkg), nil
}

// IsSystemLib reports whether name is part of the host baseline
func (b *Base) IsSystemLib(name string) bool {
	return b.systemLibs.Has(name)
}

// PkgForLib returns the package providing a shared object file name
func (b *Base) PkgForLib(name string) (string, bool) {
	pkg, ok := b.libToPkg[name]
	return pkg, ok
}

// PkgForDeb returns the package equivalent to a Debian package name
func (b *Base) PkgForDeb(name string) (string, bool) {
	pkg, ok := b.debToPkg[name]
	return pkg, ok
}

// Stats reports the size of each table
func (b *Base) Stats() (systemLibs, libs, debs int) {
	return len(b.systemLibs), len(b.libToPkg), len(b.debToPkg)
}
