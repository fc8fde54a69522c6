package nixpkgs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ralt/pkg2nix/internal/execx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	calls  []string
	failOn string
}

func (r *recordingRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func (r *recordingRunner) Run(ctx context.Context, c execx.Command) (string, error) {
	r.calls = append(r.calls, c.String())
	if r.failOn != "" && c.String() == r.failOn {
		return "", errors.New("boom")
	}
	return "", nil
}

func TestPackageDir(t *testing.T) {
	assert.Equal(t, filepath.Join("pkgs", "by-name", "fo", "foo-tool"), PackageDir("foo-tool"))
	assert.Equal(t, filepath.Join("pkgs", "by-name", "x", "x"), PackageDir("x"))
	assert.Equal(t, filepath.Join("pkgs", "by-name", "ab", "AbC"), PackageDir("AbC"))
}

func TestSubmit(t *testing.T) {
	repo := t.TempDir()
	runner := &recordingRunner{}

	err := NewSubmitter(runner, repo).Submit(context.Background(), "foo", "1.2", []byte("{ }: { }\n"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(repo, "pkgs/by-name/fo/foo/package.nix"))
	require.NoError(t, err)
	assert.Equal(t, "{ }: { }\n", string(content))

	assert.Equal(t, []string{
		"git checkout master",
		"git pull",
		"git checkout -b init-foo",
		"git add " + filepath.Join("pkgs", "by-name", "fo", "foo", "package.nix"),
		"git commit -m init: foo 1.2",
		"gh pr create --fill --title init: foo 1.2",
	}, runner.calls)
}

func TestSubmitStopsOnGitFailure(t *testing.T) {
	runner := &recordingRunner{failOn: "git pull"}

	err := NewSubmitter(runner, t.TempDir()).Submit(context.Background(), "foo", "1.2", nil)
	assert.ErrorContains(t, err, "git pull")
	assert.Equal(t, []string{"git checkout master", "git pull"}, runner.calls)
}

func TestSubmitMissingRepo(t *testing.T) {
	err := NewSubmitter(&recordingRunner{}, filepath.Join(t.TempDir(), "nope")).Submit(context.Background(), "foo", "1", nil)
	assert.Error(t, err)
}
