package resolver

import (
	"context"
	"testing"

	"github.com/ralt/pkg2nix/internal/index"
	"github.com/ralt/pkg2nix/internal/knowledge"
	"github.com/ralt/pkg2nix/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLocator answers from a fixed table and records queries
type fakeLocator struct {
	results map[string][]string
	queries []string
}

func (f *fakeLocator) Locate(ctx context.Context, filename string) ([]string, error) {
	f.queries = append(f.queries, filename)
	return f.results[filename], nil
}

// unavailableLocator behaves like a missing nix-locate
type unavailableLocator struct{}

func (unavailableLocator) Locate(ctx context.Context, filename string) ([]string, error) {
	return nil, index.ErrUnavailable
}

func set(items ...string) models.StringSet {
	return models.NewStringSet(items...)
}

func TestResolveExplicitMapping(t *testing.T) {
	kb := knowledge.New(nil, map[string]string{"libfoo.so.2": "foo-pkg"}, nil)
	res := New(kb, nil).Resolve(context.Background(), set("libfoo.so.2"), set())

	assert.Equal(t, []string{"foo-pkg"}, res.Resolved)
	assert.Empty(t, res.Missing)
}

func TestResolveBundledIsSelfSatisfied(t *testing.T) {
	kb := knowledge.New(nil, nil, nil)
	res := New(kb, &fakeLocator{}).Resolve(context.Background(), set("libbar.so.1"), set("libbar.so.1"))

	assert.Empty(t, res.Resolved)
	assert.Empty(t, res.Missing)
}

func TestResolveMissingWithoutIndex(t *testing.T) {
	kb := knowledge.New(nil, nil, nil)
	res := New(kb, unavailableLocator{}).Resolve(context.Background(), set("libbaz.so.9"), set())

	assert.Empty(t, res.Resolved)
	assert.Equal(t, []string{"libbaz.so.9"}, res.Missing)
}

func TestResolveExplicitMappingBeatsBundled(t *testing.T) {
	kb := knowledge.New(nil, map[string]string{"libfoo.so.2": "foo-pkg"}, nil)
	res := New(kb, nil).Resolve(context.Background(), set("libfoo.so.2"), set("libfoo.so.2"))

	assert.Equal(t, []string{"foo-pkg"}, res.Resolved)
}

func TestResolveSystemLibsNeverSurface(t *testing.T) {
	kb := knowledge.New(
		[]string{"libc.so.6"},
		map[string]string{"libc.so.6": "glibc"},
		nil,
	)
	loc := &fakeLocator{}
	res := New(kb, loc).Resolve(context.Background(), set("libc.so.6"), set())

	assert.Empty(t, res.Resolved)
	assert.Empty(t, res.Missing)
	assert.Empty(t, loc.queries)
}

func TestResolveUsesIndexTieBreak(t *testing.T) {
	kb := knowledge.New(nil, nil, nil)
	loc := &fakeLocator{results: map[string][]string{
		"libsqlite3.so.0": {"(sqlite-full.out)", "sqlite.out", "sqlcipher.out"},
	}}
	res := New(kb, loc).Resolve(context.Background(), set("libsqlite3.so.0", "libnope.so.1"), set())

	assert.Equal(t, []string{"sqlite"}, res.Resolved)
	assert.Equal(t, []string{"libnope.so.1"}, res.Missing)
}

func TestResolvePartitionAndDeterminism(t *testing.T) {
	kb := knowledge.New(
		[]string{"libc.so.6"},
		map[string]string{"libX11.so.6": "xorg.libX11", "libxcb.so.1": "xorg.libxcb", "libz.so.1": "zlib"},
		nil,
	)
	loc := &fakeLocator{results: map[string][]string{"libpng16.so.16": {"libpng.out"}}}
	r := New(kb, loc)

	required := set("libz.so.1", "libc.so.6", "libX11.so.6", "libpng16.so.16", "libqux.so.3", "libxcb.so.1", "libbundled.so")
	bundled := set("libbundled.so")

	first := r.Resolve(context.Background(), required, bundled)
	second := r.Resolve(context.Background(), required, bundled)
	require.Equal(t, first, second)

	assert.Equal(t, []string{"libpng", "xorg.libX11", "xorg.libxcb", "zlib"}, first.Resolved)
	assert.Equal(t, []string{"libqux.so.3"}, first.Missing)

	for _, m := range first.Missing {
		assert.NotContains(t, first.Resolved, m)
	}
}
