package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ralt/pkg2nix/internal/elfdeps"
	"github.com/ralt/pkg2nix/internal/execx"
	"github.com/ralt/pkg2nix/internal/extract"
	"github.com/ralt/pkg2nix/internal/extract/appimage"
	"github.com/ralt/pkg2nix/internal/extract/deb"
	"github.com/ralt/pkg2nix/internal/fetch"
	"github.com/ralt/pkg2nix/internal/index"
	"github.com/ralt/pkg2nix/internal/knowledge"
	"github.com/ralt/pkg2nix/internal/models"
	"github.com/ralt/pkg2nix/internal/nixpkgs"
	"github.com/ralt/pkg2nix/internal/recipe"
	"github.com/ralt/pkg2nix/internal/report"
	"github.com/ralt/pkg2nix/internal/resolver"
	"github.com/ralt/pkg2nix/internal/scanner"
	"github.com/ralt/pkg2nix/internal/utils"
	"github.com/ralt/pkg2nix/internal/verify"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type converter struct {
	config *models.ConvertConfig
	runner execx.Runner
	client *http.Client
	out    io.Writer
	silent bool

	// scan overrides the filesystem scanner when set
	scan scanner.Scanner
}

func newConverter(config *models.ConvertConfig, out io.Writer) *converter {
	return &converter{
		config: config,
		runner: execx.NewRunner(),
		client: http.DefaultClient,
		out:    out,
		silent: !term.IsTerminal(int(os.Stderr.Fd())),
	}
}

func validateConfig(config *models.ConvertConfig) error {
	if err := fetch.ValidateInput(config.Input); err != nil {
		return &models.ConvertError{Type: models.ErrInvalidInput, Input: config.Input, Err: err}
	}

	if config.OutputPath == "" {
		return &models.ConvertError{
			Type: models.ErrInvalidInput,
			Err:  fmt.Errorf("output is required"),
		}
	}

	switch config.NeededTool {
	case "":
		config.NeededTool = elfdeps.ToolNative
	case elfdeps.ToolNative, elfdeps.ToolPatchelf:
	default:
		return &models.ConvertError{
			Type: models.ErrInvalidInput,
			Err:  fmt.Errorf("unknown needed-tool %q (expected %s or %s)", config.NeededTool, elfdeps.ToolNative, elfdeps.ToolPatchelf),
		}
	}

	if (config.SignaturePath == "") != (config.KeyringPath == "") {
		return &models.ConvertError{
			Type: models.ErrInvalidInput,
			Err:  fmt.Errorf("--signature and --keyring must be used together"),
		}
	}

	return nil
}

// requiredTools lists the external programs the configured steps depend on.
// nix-locate is optional and checked lazily by the index.
func requiredTools(config *models.ConvertConfig) []string {
	var tools []string
	if !config.SkipDeps && config.NeededTool == elfdeps.ToolPatchelf {
		tools = append(tools, "patchelf")
	}
	if config.Build {
		tools = append(tools, "nix-build")
	}
	if config.NixpkgsPath != "" {
		tools = append(tools, "git", "gh")
	}
	return tools
}

func (c *converter) run(ctx context.Context) error {
	config := c.config

	if err := execx.Require(c.runner, requiredTools(config)...); err != nil {
		return &models.ConvertError{Type: models.ErrToolMissing, Err: err}
	}

	work, err := os.MkdirTemp("", "pkg2nix-")
	if err != nil {
		return &models.ConvertError{Type: models.ErrFileOp, Err: err}
	}
	defer os.RemoveAll(work)

	// Step 1: Fetch the archive
	src, err := fetch.NewFetcher(c.client, c.silent).Fetch(ctx, config.Input, work)
	if err != nil {
		return &models.ConvertError{Type: models.ErrFetch, Input: config.Input, Err: err}
	}

	// Step 2: Verify the signature
	if config.SignaturePath != "" {
		v, err := verify.NewVerifier(config.KeyringPath)
		if err != nil {
			return &models.ConvertError{Type: models.ErrSignature, Err: err}
		}
		if _, err := v.VerifyFile(src.Path, config.SignaturePath); err != nil {
			return &models.ConvertError{Type: models.ErrSignature, Input: src.Path, Err: err}
		}
	}

	// Step 3: Hash it
	checksum, err := utils.CalculateChecksums(src.Path)
	if err != nil {
		return &models.ConvertError{Type: models.ErrChecksum, Input: src.Path, Err: err}
	}
	logrus.Infof("sha256: %s (%d bytes)", checksum.Nix32, checksum.Size)

	// Step 4: Detect and extract
	kind, err := scanner.DetectPackageType(src.Path)
	if err != nil {
		return &models.ConvertError{Type: models.ErrDetect, Input: src.Path, Err: err}
	}
	if kind == scanner.TypeUnknown {
		return &models.ConvertError{
			Type:  models.ErrDetect,
			Input: src.Path,
			Err:   fmt.Errorf("neither a Debian archive nor an AppImage"),
		}
	}
	logrus.Infof("Detected %s package", kind)

	root := filepath.Join(work, "root")
	if err := os.MkdirAll(root, 0755); err != nil {
		return &models.ConvertError{Type: models.ErrFileOp, Err: err}
	}

	meta, err := c.extractor(kind).Extract(ctx, src.Path, root)
	if err != nil {
		return &models.ConvertError{Type: models.ErrUnpack, Input: src.Path, Err: err}
	}
	logrus.Infof("Package %s %s (%s)", meta.Name, meta.Version, meta.Architecture)

	// Step 5: Resolve dependencies
	loader := knowledge.NewLoader(config.KnowledgeBasePath)
	kbSource := "not used"
	result := &analysis{}
	if config.SkipDeps {
		logrus.Info("Skipping dependency resolution")
	} else {
		kbSource = loader.Source()
		locator := index.NewNixLocate(c.runner)
		result, err = analyze(ctx, kind, meta, root,
			c.fileScanner(),
			resolver.New(loader.Load(), locator))
		if err != nil {
			return &models.ConvertError{Type: models.ErrUnpack, Input: src.Path, Err: err}
		}
	}

	summary := report.Summary{
		Name:          meta.Name,
		Version:       meta.Version,
		KnowledgeBase: kbSource,
		Resolved:      result.Resolved,
		Missing:       result.Missing,
		Dropped:       result.Dropped,
		Unresolved:    result.Unresolved,
	}
	if err := report.Print(c.out, summary); err != nil {
		return &models.ConvertError{Type: models.ErrFileOp, Err: err}
	}

	// Step 6: Render and write the recipe
	in := recipe.Input{
		Type:     kind,
		Meta:     *meta,
		URL:      src.URL,
		SHA256:   checksum.Nix32,
		Packages: result.Resolved,
		Upstream: config.Upstream,
	}
	content, err := recipe.Render(in)
	if err != nil {
		return &models.ConvertError{Type: models.ErrRender, Err: err}
	}
	if err := utils.WriteFile(config.OutputPath, content, 0644); err != nil {
		return &models.ConvertError{Type: models.ErrFileOp, Input: config.OutputPath, Err: err}
	}
	logrus.Infof("Wrote %s", config.OutputPath)

	// Step 7: Optional follow-ups
	if config.Build {
		c.build(ctx, config.OutputPath)
	}

	if config.NixpkgsPath != "" {
		in.Upstream = true
		upstream, err := recipe.Render(in)
		if err != nil {
			return &models.ConvertError{Type: models.ErrRender, Err: err}
		}
		if err := nixpkgs.NewSubmitter(c.runner, config.NixpkgsPath).Submit(ctx, meta.Name, meta.Version, upstream); err != nil {
			logrus.Errorf("Failed to submit to nixpkgs: %v", err)
		}
	}

	return nil
}

func (c *converter) extractor(kind scanner.PackageType) extract.Extractor {
	if kind == scanner.TypeAppImage {
		return appimage.NewExtractor(c.runner)
	}
	return deb.NewExtractor()
}

func (c *converter) fileScanner() scanner.Scanner {
	if c.scan != nil {
		return c.scan
	}
	return scanner.NewFileSystemScanner(c.neededReader())
}

func (c *converter) neededReader() scanner.NeededReader {
	if c.config.NeededTool == elfdeps.ToolPatchelf {
		return elfdeps.NewPatchelf(c.runner)
	}
	return elfdeps.Native{}
}

func (c *converter) build(ctx context.Context, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	logrus.Infof("Building %s...", abs)
	if _, err := c.runner.Run(ctx, execx.Command{
		Name:        "nix-build",
		Args:        []string{abs},
		Dir:         filepath.Dir(abs),
		Interactive: true,
	}); err != nil {
		logrus.Errorf("nix-build failed: %v", err)
		return
	}
	logrus.Info("Build succeeded")
}
