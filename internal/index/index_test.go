package index

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/ralt/pkg2nix/internal/execx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	installed bool
	outputs   map[string]string
	lookups   int
	calls     []execx.Command
}

func (f *fakeRunner) Run(ctx context.Context, c execx.Command) (string, error) {
	f.calls = append(f.calls, c)
	file := c.Args[len(c.Args)-1]
	out, ok := f.outputs[file]
	if !ok {
		return "", &execx.ExternalCommandError{Message: "no match", ExitCode: 1}
	}
	return out, nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	f.lookups++
	if !f.installed {
		return "", exec.ErrNotFound
	}
	return "/run/current-system/sw/bin/" + name, nil
}

func TestCleanAttrPath(t *testing.T) {
	cases := map[string]string{
		"zlib.out":                               "zlib",
		"nixpkgs.zlib.out":                       "zlib",
		"xorg.libX11.out":                        "xorg.libX11",
		"xorg.libX11":                            "xorg.libX11",
		"legacyPackages.x86_64-linux.gtk3":       "gtk3",
		"legacyPackages.x86_64-linux.qt5.qtbase": "qt5.qtbase",
		"gcc.cc.lib":                             "gcc.cc",
		"lib":                                    "lib",
		"legacyPackages":                         "legacyPackages",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanAttrPath(in), in)
	}
}

func TestPickCandidate(t *testing.T) {
	attr, ok := PickCandidate([]string{"(zlib-ng.out)", "", "zlib.out", "zlib-ng.out"})
	require.True(t, ok)
	assert.Equal(t, "zlib", attr)

	_, ok = PickCandidate([]string{"(a.out)", "  "})
	assert.False(t, ok)

	_, ok = PickCandidate(nil)
	assert.False(t, ok)
}

func TestNixLocate(t *testing.T) {
	r := &fakeRunner{installed: true, outputs: map[string]string{
		"libfoo.so.1": "foo.out\nfoo-full.out\n",
	}}
	n := NewNixLocate(r)

	lines, err := n.Locate(context.Background(), "libfoo.so.1")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo.out", "foo-full.out"}, lines)
	assert.Equal(t, []string{"--top-level", "--minimal", "--whole-name", "libfoo.so.1"}, r.calls[0].Args)

	lines, err = n.Locate(context.Background(), "libnone.so.1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	attr, ok := Lookup(context.Background(), n, "libfoo.so.1")
	require.True(t, ok)
	assert.Equal(t, "foo", attr)
}

func TestNixLocateUnavailable(t *testing.T) {
	r := &fakeRunner{installed: false}
	n := NewNixLocate(r)

	for i := 0; i < 3; i++ {
		_, err := n.Locate(context.Background(), "libfoo.so.1")
		assert.True(t, errors.Is(err, ErrUnavailable))
	}
	assert.Equal(t, 1, r.lookups, "availability should be checked once")
	assert.Empty(t, r.calls)

	_, ok := Lookup(context.Background(), n, "libfoo.so.1")
	assert.False(t, ok)
}

func TestLookupNilLocator(t *testing.T) {
	_, ok := Lookup(context.Background(), nil, "libfoo.so.1")
	assert.False(t, ok)
}
