package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ProviderRPC implements the go-plugin Plugin interface for providers.
type ProviderRPC struct {
	plugin.Plugin
	Impl Provider
}

// Server returns an RPC server for this provider.
func (p *ProviderRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ProviderRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this provider.
func (p *ProviderRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ProviderRPCClient{client: c}, nil
}

// ProviderRPCServer is the provider-side RPC implementation.
type ProviderRPCServer struct {
	Impl Provider
}

// Palette implements the RPC method for palette generation.
func (s *ProviderRPCServer) Palette(req Request, resp *[]Colour) error {
	colours, err := s.Impl.Palette(context.Background(), req)
	if err != nil {
		return err
	}
	*resp = colours
	return nil
}

// Info implements the RPC method for fetching provider metadata.
func (s *ProviderRPCServer) Info(_ any, resp *Info) error {
	*resp = s.Impl.Info()
	return nil
}

// Flags implements the RPC method for fetching argument help.
func (s *ProviderRPCServer) Flags(_ any, resp *[]FlagHelp) error {
	*resp = s.Impl.Flags()
	return nil
}

// ProviderRPCClient is the host-side RPC implementation.
type ProviderRPCClient struct {
	client *rpc.Client
}

// Palette calls the remote Palette method.
func (c *ProviderRPCClient) Palette(_ context.Context, req Request) ([]Colour, error) {
	var colours []Colour
	if err := c.client.Call("Plugin.Palette", req, &colours); err != nil {
		return nil, err
	}
	return colours, nil
}

// Info calls the remote Info method.
func (c *ProviderRPCClient) Info() Info {
	var info Info
	if err := c.client.Call("Plugin.Info", new(any), &info); err != nil {
		return Info{}
	}
	return info
}

// Flags calls the remote Flags method.
func (c *ProviderRPCClient) Flags() []FlagHelp {
	var help []FlagHelp
	if err := c.client.Call("Plugin.Flags", new(any), &help); err != nil {
		return []FlagHelp{}
	}
	return help
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
