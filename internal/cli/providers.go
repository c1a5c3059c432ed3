package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/internal/config"
	"github.com/jmylchreest/irodori/internal/provider"
)

var (
	// Providers command flags
	providersListJSON bool
)

// providersCmd represents the providers command group
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage palette providers",
	Long: `List, inspect and install palette providers.

External providers are standalone executables named
irodori-provider-<name>, found in the user provider directory and on
IRODORI_PROVIDER_PATH.`,
}

// providersListCmd represents the providers list command
var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available providers",
	Long: `List every known provider: the built-ins plus any external provider
binaries discovered on the provider path.

Examples:
  # List all providers
  irodori providers list

  # Machine-readable output
  irodori providers list --json`,
	RunE: runProvidersList,
}

// providersInfoCmd represents the providers info command
var providersInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show a provider's description and flags",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersInfo,
}

// providersInstallCmd represents the providers install command
var providersInstallCmd = &cobra.Command{
	Use:   "install <owner/repo[@version]>",
	Short: "Install a provider from a GitHub release",
	Long: `Download a provider binary from a GitHub release and install it into
the user provider directory. The release must carry an asset for this
platform; bare binaries, gz/xz/bz2 compressed binaries and tar.gz,
tar.xz, tar.bz2 or zip archives are all accepted.

Examples:
  # Install the latest release
  irodori providers install example/irodori-provider-mood

  # Install a specific version
  irodori providers install example/irodori-provider-mood@v1.2.0`,
	Args: cobra.ExactArgs(1),
	RunE: runProvidersInstall,
}

func init() {
	providersListCmd.Flags().BoolVar(&providersListJSON, "json", false, "output as JSON")

	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersInfoCmd)
	providersCmd.AddCommand(providersInstallCmd)
}

// runProvidersList executes the providers list command.
func runProvidersList(cmd *cobra.Command, args []string) error {
	discoverProviders()

	type listed struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Enabled     bool   `json:"enabled"`
		Description string `json:"description"`
		Path        string `json:"path,omitempty"`
	}

	var rows []listed
	for _, name := range sharedManager.Registry().List() {
		p, _ := sharedManager.Get(name)

		entry := listed{
			Name:        name,
			Type:        "builtin",
			Enabled:     sharedManager.IsEnabled(name),
			Description: p.Description(),
		}
		if ext, ok := p.(*provider.ExternalProvider); ok {
			entry.Type = "external"
			entry.Path = ext.Path()
		}
		rows = append(rows, entry)
	}

	if providersListJSON {
		return printJSON(rows)
	}

	table := NewTable("NAME", "TYPE", "ENABLED", "DESCRIPTION")
	table.SetColumnMaxWidth(3, 48)
	for _, r := range rows {
		enabled := "yes"
		if !r.Enabled {
			enabled = "no"
		}
		table.AddRow(r.Name, r.Type, enabled, r.Description)
	}
	fmt.Print(table.Render())
	return nil
}

// runProvidersInfo executes the providers info command.
func runProvidersInfo(cmd *cobra.Command, args []string) error {
	discoverProviders()

	name := args[0]
	p, ok := sharedManager.Get(name)
	if !ok {
		return fmt.Errorf("unknown provider %q", name)
	}

	fmt.Printf("Name:        %s\n", p.Name())
	fmt.Printf("Description: %s\n", p.Description())
	if ext, ok := p.(*provider.ExternalProvider); ok {
		fmt.Printf("Path:        %s\n", ext.Path())
	}
	if !sharedManager.IsEnabled(name) {
		fmt.Println("Enabled:     no")
	}

	flags := p.FlagHelp()
	if len(flags) == 0 {
		return nil
	}

	fmt.Println()
	table := NewTable("FLAG", "TYPE", "DEFAULT", "DESCRIPTION")
	table.SetColumnMaxWidth(3, 48)
	for _, f := range flags {
		flagName := "--" + f.Name
		if f.Required {
			flagName += " (required)"
		}
		table.AddRow(flagName, f.Type, f.Default, f.Description)
	}
	fmt.Print(table.Render())
	return nil
}

// runProvidersInstall executes the providers install command.
func runProvidersInstall(cmd *cobra.Command, args []string) error {
	destDir, err := config.ProvidersDir()
	if err != nil {
		return err
	}

	installer := provider.NewInstaller(destDir, newLogger("installer"))
	path, err := installer.Install(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Installed %s\n", path)
	return nil
}
