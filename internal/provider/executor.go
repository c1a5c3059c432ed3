package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/irodori/pkg/plugin"
)

// infoTimeout bounds the --plugin-info probe of an external provider.
const infoTimeout = 5 * time.Second

// QueryInfo asks an external provider executable for its metadata.
func QueryInfo(path string) (plugin.Info, error) {
	ctx, cancel := context.WithTimeout(context.Background(), infoTimeout)
	defer cancel()

	// #nosec G204 -- path comes from provider discovery or an explicit registration
	cmd := exec.CommandContext(ctx, path, plugin.InfoFlag)
	output, err := cmd.Output()
	if err != nil {
		return plugin.Info{}, fmt.Errorf("failed to query provider: %w", err)
	}

	var info plugin.Info
	if err := json.Unmarshal(output, &info); err != nil {
		return plugin.Info{}, fmt.Errorf("failed to parse provider info: %w", err)
	}
	return info, nil
}

// Executor runs an external provider executable over whichever protocol
// it advertises.
type Executor struct {
	path string
	info plugin.Info
	log  hclog.Logger

	client *goplugin.Client
	impl   plugin.Provider
}

// NewExecutor probes the executable at path and prepares an executor for
// it. A go-plugin connection is only established on first use.
func NewExecutor(path string, log hclog.Logger) (*Executor, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	info, err := QueryInfo(path)
	if err != nil {
		return nil, err
	}

	switch info.Protocol {
	case plugin.ProtocolGoPlugin, plugin.ProtocolJSON:
	case "":
		// Providers that predate the protocol field speak JSON on stdio.
		info.Protocol = plugin.ProtocolJSON
	default:
		return nil, fmt.Errorf("unknown provider protocol: %s", info.Protocol)
	}

	return &Executor{path: path, info: info, log: log}, nil
}

// Info returns the metadata captured when the executor was created.
func (e *Executor) Info() plugin.Info {
	return e.info
}

// Palette runs the provider and returns its colours.
func (e *Executor) Palette(ctx context.Context, req plugin.Request) ([]plugin.Colour, error) {
	switch e.info.Protocol {
	case plugin.ProtocolGoPlugin:
		return e.paletteGoPlugin(ctx, req)
	case plugin.ProtocolJSON:
		return e.paletteJSON(ctx, req)
	default:
		return nil, fmt.Errorf("unsupported provider protocol: %s", e.info.Protocol)
	}
}

// Flags returns the provider's flag help. JSON-stdio providers do not
// describe flags and get an empty list.
func (e *Executor) Flags() []plugin.FlagHelp {
	if e.info.Protocol != plugin.ProtocolGoPlugin {
		return nil
	}
	impl, err := e.dial()
	if err != nil {
		return nil
	}
	return impl.Flags()
}

// Close tears down any live provider connection.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.impl = nil
	}
}

// dial starts the provider process and dispenses its RPC client,
// reusing an existing connection when there is one.
func (e *Executor) dial() (plugin.Provider, error) {
	if e.impl != nil {
		return e.impl, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: plugin.Handshake,
		Plugins: map[string]goplugin.Plugin{
			plugin.ProviderPluginName: &plugin.ProviderRPC{},
		},
		// #nosec G204 -- path comes from provider discovery or an explicit registration
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.log,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.ProviderPluginName)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense provider: %w", err)
	}

	impl, ok := raw.(plugin.Provider)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("provider dispensed unexpected type %T", raw)
	}
	e.impl = impl
	return impl, nil
}

func (e *Executor) paletteGoPlugin(ctx context.Context, req plugin.Request) ([]plugin.Colour, error) {
	impl, err := e.dial()
	if err != nil {
		return nil, err
	}
	return impl.Palette(ctx, req)
}

// paletteJSON writes the request to the provider's stdin and parses the
// colour array it prints on stdout.
func (e *Executor) paletteJSON(ctx context.Context, req plugin.Request) ([]plugin.Colour, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// #nosec G204 -- path comes from provider discovery or an explicit registration
	cmd := exec.CommandContext(ctx, e.path)
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("provider execution failed: %w\nstderr: %s", err, stderr.String())
	}

	colours, err := parsePaletteJSON(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to parse provider output: %w", err)
	}
	return colours, nil
}
