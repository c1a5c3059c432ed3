package plugin

import (
	"github.com/hashicorp/go-plugin"
)

// Handshake is the handshake configuration for the go-plugin protocol.
// It ensures providers speaking go-plugin only connect to compatible hosts.
//
// NOTE: go-plugin's ProtocolVersion is a single uint that must match
// exactly; the major of ProtocolVersion is used for it. Full semantic
// version checking (including MinCompatibleVersion) happens separately via
// the --plugin-info query and IsCompatible.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  uint(CurrentVersion().Major),
	MagicCookieKey:   "IRODORI_PLUGIN",
	MagicCookieValue: "irodori_palette_provider",
}

// ProviderPluginName is the key providers are registered and dispensed
// under in the go-plugin plugin map.
const ProviderPluginName = "provider"

// InfoFlag is the argument a provider binary answers with its metadata as
// JSON on stdout. Hosts probe it before deciding how to talk to a binary.
const InfoFlag = "--plugin-info"

// Protocol identifies how a provider binary communicates.
type Protocol string

const (
	// ProtocolGoPlugin is the HashiCorp go-plugin RPC protocol.
	ProtocolGoPlugin Protocol = "go-plugin"

	// ProtocolJSON is plain JSON over stdin/stdout for providers written
	// without this SDK.
	ProtocolJSON Protocol = "json-stdio"
)
