package cli

import (
	"github.com/ralt/pkg2nix/internal/elfdeps"
	"github.com/ralt/pkg2nix/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var config models.ConvertConfig

	rootCmd := &cobra.Command{
		Use:   "pkg2nix <url|file>",
		Short: "Convert .deb and AppImage packages into Nix expressions",
		Long: `pkg2nix downloads or reads a Debian package or AppImage, inspects the
shared libraries its binaries link against and resolves them to nixpkgs
attributes. The result is written as a Nix expression.

Library resolution uses, in order:
  - the knowledge base (libraries.yaml / libraries.json, or --libraries)
  - bundled copies inside the package
  - nix-locate, when a nix-index database is available`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Input = args[0]

			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", config)

			return newConverter(&config, cmd.OutOrStdout()).run(cmd.Context())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Output flags
	rootCmd.Flags().StringVarP(&config.OutputPath, "output", "o", "default.nix", "Path of the generated Nix expression")
	rootCmd.Flags().BoolVar(&config.Upstream, "upstream", false, "Generate a callPackage-style expression for nixpkgs")

	// Resolution flags
	rootCmd.Flags().BoolVar(&config.SkipDeps, "skip-deps", false, "Skip dependency scanning and resolution")
	rootCmd.Flags().StringVar(&config.KnowledgeBasePath, "libraries", "", "Knowledge base file (YAML or JSON)")
	rootCmd.Flags().StringVar(&config.NeededTool, "needed-tool", elfdeps.ToolNative, "How DT_NEEDED entries are read (native, patchelf)")

	// Signature flags
	rootCmd.Flags().StringVar(&config.SignaturePath, "signature", "", "Detached OpenPGP signature of the archive")
	rootCmd.Flags().StringVar(&config.KeyringPath, "keyring", "", "Public keyring used to check --signature")

	// Post-generation flags
	rootCmd.Flags().BoolVar(&config.Build, "build", false, "Run nix-build on the generated expression")
	rootCmd.Flags().StringVar(&config.NixpkgsPath, "nixpkgs", "", "Local nixpkgs checkout to open a pull request against")

	return rootCmd
}
