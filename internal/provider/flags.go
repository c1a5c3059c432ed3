package provider

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/irodori/pkg/plugin"
)

// FlagHelpFor derives FlagHelp entries by registering a provider's flags
// on a scratch command and reading them back, so help output cannot
// drift from what RegisterFlags actually binds. Pass a fresh provider
// instance; registration writes the defaults into its fields. Flags
// named in required are marked as such.
func FlagHelpFor(p Provider, required ...string) []plugin.FlagHelp {
	cmd := &cobra.Command{}
	p.RegisterFlags(cmd)

	mustSet := make(map[string]bool, len(required))
	for _, name := range required {
		mustSet[name] = true
	}

	var help []plugin.FlagHelp
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		help = append(help, plugin.FlagHelp{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
			Description: f.Usage,
			Required:    mustSet[f.Name],
		})
	})
	return help
}
