// Package main provides the folio CLI entry point.
package main

import (
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gauthierbraillon/folio/internal/config"
	"github.com/gauthierbraillon/folio/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version, then the module version
// recorded by go install, then "dev".
func resolveVersion(v string, bi *debug.BuildInfo) string {
	if v != "dev" {
		return v
	}
	if bi == nil || bi.Main.Version == "" || bi.Main.Version == "(devel)" {
		return "dev"
	}
	return bi.Main.Version
}

func currentVersion() string {
	bi, _ := debug.ReadBuildInfo()
	return resolveVersion(version, bi)
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	offline    bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// newRootCmd creates the root command for the folio CLI.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Discover portfolio posts, articles, stories and repositories",
		Long: "Folio merges the authored blog catalog with DEV.to articles, Hacker News stories,\n" +
			"GitHub repositories and RSS feeds, then lets you search, filter, sort and page through them.",
		Version:       currentVersion(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.SetVersionTemplate("folio version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/folio/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.offline, "offline", false, "Use the authored catalog only, without remote sources")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newDiscoverCmd(a))
	rootCmd.AddCommand(newFeaturedCmd(a))
	rootCmd.AddCommand(newAskCmd(a))
	rootCmd.AddCommand(newOpenCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

func (a *app) setup() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
