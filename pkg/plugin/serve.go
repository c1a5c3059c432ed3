package plugin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-plugin"
)

// Serve is the entrypoint for a provider binary. It answers the
// --plugin-info probe with the provider's metadata as indented JSON on
// stdout, otherwise it serves the provider over go-plugin. It does not
// return.
func Serve(impl Provider) {
	if len(os.Args) > 1 && os.Args[1] == InfoFlag {
		if err := WriteInfo(os.Stdout, impl.Info()); err != nil {
			fmt.Fprintf(os.Stderr, "error encoding provider info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			ProviderPluginName: &ProviderRPC{Impl: impl},
		},
	})
}

// WriteInfo encodes provider metadata the way the --plugin-info probe
// expects it.
func WriteInfo(w io.Writer, info Info) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
