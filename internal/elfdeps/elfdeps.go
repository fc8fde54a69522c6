// Package elfdeps reads the DT_NEEDED entries of ELF binaries.
package elfdeps

import (
	"context"
	"debug/elf"

	"github.com/ralt/pkg2nix/internal/execx"
	"github.com/sirupsen/logrus"
)

const (
	ToolNative   = "native"
	ToolPatchelf = "patchelf"
)

// Native reads the dynamic section in-process
type Native struct{}

// Needed returns the shared objects a file links against, or nil when the
// file is not a dynamically linked ELF object.
func (Native) Needed(ctx context.Context, path string) []string {
	f, err := elf.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	libs, err := f.ImportedLibraries()
	if err != nil {
		logrus.Debugf("Reading dynamic section of %s: %v", path, err)
		return nil
	}
	return libs
}

// Patchelf shells out to `patchelf --print-needed`
type Patchelf struct {
	runner execx.Runner
}

// NewPatchelf creates a patchelf-backed reader
func NewPatchelf(r execx.Runner) *Patchelf {
	return &Patchelf{runner: r}
}

// Needed implements scanner.NeededReader
func (p *Patchelf) Needed(ctx context.Context, path string) []string {
	out, err := p.runner.Run(ctx, execx.Command{
		Name: "patchelf",
		Args: []string{"--print-needed", path},
	})
	if err != nil {
		return nil
	}
	return execx.Lines(out)
}

// Machine maps the ELF machine of a binary to a Nix system double
func Machine(path string) (string, bool) {
	f, err := elf.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	switch f.Machine {
	case elf.EM_X86_64:
		return "x86_64-linux", true
	case elf.EM_AARCH64:
		return "aarch64-linux", true
	case elf.EM_386:
		return "i686-linux", true
	case elf.EM_RISCV:
		return "riscv64-linux", true
	default:
		return "", false
	}
}
