package execx

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookOnly map[string]bool

func (l lookOnly) Run(ctx context.Context, c Command) (string, error) {
	return "", nil
}

func (l lookOnly) LookPath(name string) (string, error) {
	if l[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"libc.so.6", "libz.so.1"}, Lines("  libc.so.6\n\n libz.so.1 \n"))
	assert.Nil(t, Lines("\n \n"))
}

func TestRequire(t *testing.T) {
	r := lookOnly{"git": true}

	require.NoError(t, Require(r, "git"))

	err := Require(r, "git", "gh", "nix-build")
	var missing *MissingToolsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"gh", "nix-build"}, missing.Tools)
	assert.Contains(t, err.Error(), "nix-shell -p gh nix-build")
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := NewRunner().Run(context.Background(), Command{Name: "pkg2nix-definitely-not-a-tool"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "nix-locate", Args: []string{"--minimal", "libz.so.1"}}
	assert.Equal(t, "nix-locate --minimal libz.so.1", c.String())
}
