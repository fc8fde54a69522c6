// Package nixpkgs proposes a generated recipe to a local nixpkgs checkout.
package nixpkgs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/pkg2nix/internal/execx"
	"github.com/ralt/pkg2nix/internal/utils"
	"github.com/sirupsen/logrus"
)

const baseBranch = "master"

// Submitter commits recipes to a nixpkgs checkout and opens a pull request
type Submitter struct {
	runner   execx.Runner
	repoPath string
}

// NewSubmitter creates a submitter for the checkout at repoPath
func NewSubmitter(r execx.Runner, repoPath string) *Submitter {
	return &Submitter{runner: r, repoPath: repoPath}
}

// PackageDir returns the pkgs/by-name directory for name, relative to the
// repository root
func PackageDir(name string) string {
	shard := strings.ToLower(name)
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return filepath.Join("pkgs", "by-name", shard, name)
}

// Submit writes content as package.nix on a fresh init-<name> branch,
// commits it and opens a pull request
func (s *Submitter) Submit(ctx context.Context, name, version string, content []byte) error {
	info, err := os.Stat(s.repoPath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("nixpkgs path %s does not exist", s.repoPath)
	}
	if name == "" {
		return fmt.Errorf("package name is empty")
	}

	branch := "init-" + name
	message := fmt.Sprintf("init: %s %s", name, version)
	packageFile := filepath.Join(PackageDir(name), "package.nix")

	for _, args := range [][]string{
		{"checkout", baseBranch},
		{"pull"},
		{"checkout", "-b", branch},
	} {
		if err := s.git(ctx, args...); err != nil {
			return err
		}
	}

	if err := utils.WriteFile(filepath.Join(s.repoPath, packageFile), content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", packageFile, err)
	}
	logrus.Infof("Created %s", packageFile)

	if err := s.git(ctx, "add", packageFile); err != nil {
		return err
	}
	if err := s.git(ctx, "commit", "-m", message); err != nil {
		return err
	}

	logrus.Info("Creating pull request...")
	if _, err := s.runner.Run(ctx, execx.Command{
		Name:        "gh",
		Args:        []string{"pr", "create", "--fill", "--title", message},
		Dir:         s.repoPath,
		Interactive: true,
	}); err != nil {
		return fmt.Errorf("failed to create pull request (check `gh auth status`): %w", err)
	}

	logrus.Infof("Pull request created for %s", branch)
	return nil
}

func (s *Submitter) git(ctx context.Context, args ...string) error {
	_, err := s.runner.Run(ctx, execx.Command{
		Name: "git",
		Args: args,
		Dir:  s.repoPath,
	})
	if err != nil {
		return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return nil
}
