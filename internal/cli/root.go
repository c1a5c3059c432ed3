// Package cli provides the command-line interface for irodori.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/internal/config"
	"github.com/jmylchreest/irodori/internal/provider"
	"github.com/jmylchreest/irodori/internal/version"
	"github.com/jmylchreest/irodori/pkg/catalogue"
	"github.com/jmylchreest/irodori/pkg/deltae"
)

var (
	// Global flags
	flagVerbose  bool
	flagQuiet    bool
	flagNoColour bool
	flagEnvFile  string

	// Shared provider manager instance used by all commands
	sharedManager *provider.Manager

	// Shared distance engine, built on first use so it sees configuration
	// loaded by PersistentPreRunE.
	sharedEngine *deltae.Engine

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "irodori",
		Short: "Perceptual colour distance and matching",
		Long: `Irodori measures how different colours look to a human eye and puts
that measurement to work: converting between colour spaces, matching
colours against a catalogue of traditional Japanese colour names,
scoring palette harmony and extracting palettes from images.

Distances are computed in CIE LAB space with the CIE76, CIE94 or
CIEDE2000 formulae.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(flagEnvFile); err != nil {
				return err
			}
			sharedManager.RefreshEnvConfig()
			return nil
		},
	}
)

// ExecuteContext runs the root command with the given context.
// This is called by main.main(). It only needs to happen once.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Initialise shared provider manager using builder pattern.
	// Starts with environment config; refreshed after .env loading at runtime.
	sharedManager = provider.NewBuilder().
		WithEnvConfig().
		Build()

	// Built-in providers contribute their own flags to suggest.
	for _, name := range sharedManager.Registry().List() {
		if p, ok := sharedManager.Get(name); ok {
			p.RegisterFlags(suggestCmd)
		}
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColour, "no-colour", false, "disable colour swatches in terminal output")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "load environment variables from this file")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(distanceCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(harmonyCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(providersCmd)
}

// sharedDeltaE returns the process-wide distance engine, creating it
// with the configured cache capacity on first use.
func sharedDeltaE() *deltae.Engine {
	if sharedEngine == nil {
		sharedEngine = deltae.New(deltae.Options{CacheCapacity: config.CacheCapacity()})
	}
	return sharedEngine
}

// resolveMetric picks the metric for a command: the --metric flag when
// given, otherwise IRODORI_METRIC, otherwise the flag's default.
func resolveMetric(cmd *cobra.Command, flagValue string) (deltae.Metric, error) {
	if !cmd.Flags().Changed("metric") {
		if env := config.Metric(); env != "" {
			flagValue = env
		}
	}
	return deltae.ParseMetric(flagValue)
}

// buildMatcher loads and indexes a catalogue. Path precedence: the
// explicit flag value, IRODORI_CATALOGUE, then the embedded catalogue.
func buildMatcher(path string) (*catalogue.Matcher, error) {
	if path == "" {
		path = config.Catalogue()
	}

	var entries []catalogue.Entry
	var err error
	if path != "" {
		entries, err = catalogue.LoadFile(path)
	} else {
		entries, err = catalogue.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}

	return catalogue.NewMatcher(entries, sharedDeltaE(), newLogger("catalogue"))
}

// newLogger builds an hclog logger honouring --verbose and --quiet.
func newLogger(name string) hclog.Logger {
	level := hclog.Warn
	if flagVerbose {
		level = hclog.Debug
	}
	if flagQuiet {
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: os.Stderr,
	})
}

// discoverProviders scans the configured directories for external
// provider binaries and registers them with the shared manager. Only
// commands that talk to providers call this.
func discoverProviders() {
	var dirs []string
	if dir, err := config.ProvidersDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, config.ProviderPath()...)
	sharedManager.Discover(dirs...)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
