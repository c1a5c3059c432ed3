package provider

import (
	"context"
	"maps"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/pkg/plugin"
)

// ExternalProvider adapts an external executable to the Provider
// interface. Each palette request runs the executable afresh; nothing
// is kept alive between calls.
type ExternalProvider struct {
	name        string
	description string
	path        string
	log         hclog.Logger
	args        map[string]any
}

// NewExternalProvider wraps the executable at path as a provider.
func NewExternalProvider(name, description, path string, log hclog.Logger) *ExternalProvider {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &ExternalProvider{
		name:        name,
		description: description,
		path:        path,
		log:         log,
	}
}

// Name returns the provider's name.
func (p *ExternalProvider) Name() string {
	return p.name
}

// Description returns the provider's description.
func (p *ExternalProvider) Description() string {
	return p.description
}

// Path returns the provider executable's path.
func (p *ExternalProvider) Path() string {
	return p.path
}

// RegisterFlags is a no-op; external providers receive their arguments
// through the request instead of host-side flags.
func (p *ExternalProvider) RegisterFlags(_ *cobra.Command) {}

// Validate always succeeds. The executable was probed at registration;
// anything that has broken since surfaces when the palette is requested.
func (p *ExternalProvider) Validate() error {
	return nil
}

// SetArgs sets default arguments merged into every request.
func (p *ExternalProvider) SetArgs(args map[string]any) {
	p.args = args
}

// FlagHelp queries the provider executable for its flag help.
func (p *ExternalProvider) FlagHelp() []plugin.FlagHelp {
	ex, err := NewExecutor(p.path, p.log)
	if err != nil {
		p.log.Debug("cannot query provider flags", "provider", p.name, "error", err)
		return nil
	}
	defer ex.Close()
	return ex.Flags()
}

// Palette executes the provider. Request arguments take precedence over
// the provider's defaults.
func (p *ExternalProvider) Palette(ctx context.Context, req plugin.Request) ([]plugin.Colour, error) {
	ex, err := NewExecutor(p.path, p.log)
	if err != nil {
		return nil, err
	}
	defer ex.Close()

	if len(p.args) > 0 {
		merged := make(map[string]any, len(p.args)+len(req.Args))
		maps.Copy(merged, p.args)
		maps.Copy(merged, req.Args)
		req.Args = merged
	}

	return ex.Palette(ctx, req)
}
