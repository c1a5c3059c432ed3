package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/irodori/pkg/plugin"
)

// ExternalPrefix is the filename prefix discovery looks for.
const ExternalPrefix = "irodori-provider-"

// Config holds provider enable/disable configuration.
type Config struct {
	// Disabled lists provider names to disable. The keyword "all"
	// disables every provider.
	Disabled []string

	// Enabled lists provider names to enable. When set (and not
	// "all"), only the listed providers are enabled.
	Enabled []string
}

// Builder provides a fluent interface for constructing a Manager.
type Builder struct {
	config   Config
	registry *Registry
	log      hclog.Logger
	useEnv   bool
}

// NewBuilder creates a Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config:   Config{},
		registry: NewRegistry(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from the environment. Reads
// IRODORI_DISABLED_PROVIDERS and IRODORI_ENABLED_PROVIDERS.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithLogger sets the logger used by the manager and the providers it
// registers.
func (b *Builder) WithLogger(log hclog.Logger) *Builder {
	b.log = log
	return b
}

// WithRegistry provides a custom provider registry (useful for testing).
func (b *Builder) WithRegistry(reg *Registry) *Builder {
	b.registry = reg
	return b
}

// Build constructs the Manager and registers the built-in providers.
func (b *Builder) Build() *Manager {
	config := b.config

	if b.useEnv {
		if disabled := os.Getenv("IRODORI_DISABLED_PROVIDERS"); disabled != "" {
			config.Disabled = parseProviderList(disabled)
		}
		if enabled := os.Getenv("IRODORI_ENABLED_PROVIDERS"); enabled != "" {
			config.Enabled = parseProviderList(enabled)
		}
	}

	log := b.log
	if log == nil {
		log = hclog.NewNullLogger()
	}

	m := &Manager{
		config:   config,
		registry: b.registry,
		log:      log,
	}
	m.registerBuiltins()
	return m
}

// Manager owns the provider registry and decides which providers are
// enabled.
type Manager struct {
	config   Config
	registry *Registry
	log      hclog.Logger
}

func (m *Manager) registerBuiltins() {
	m.registry.Register(NewFileProvider())
	m.registry.Register(NewRandomProvider())
	m.registry.Register(NewImageProvider())
	m.registry.Register(NewGeminiProvider())
}

// Registry returns the provider registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Get retrieves a provider by name.
func (m *Manager) Get(name string) (Provider, bool) {
	return m.registry.Get(name)
}

// IsEnabled determines whether a provider is enabled. Providers are
// enabled unless configuration says otherwise; a non-"all" Enabled list
// switches to whitelist mode.
func (m *Manager) IsEnabled(name string) bool {
	if slices.Contains(m.config.Disabled, "all") {
		return false
	}
	if slices.Contains(m.config.Disabled, name) {
		return false
	}
	if slices.Contains(m.config.Enabled, "all") {
		return true
	}
	if len(m.config.Enabled) > 0 {
		return slices.Contains(m.config.Enabled, name)
	}
	return true
}

// Filter returns only the enabled providers.
func (m *Manager) Filter() map[string]Provider {
	enabled := make(map[string]Provider)
	for name, p := range m.registry.All() {
		if m.IsEnabled(name) {
			enabled[name] = p
		}
	}
	return enabled
}

// List returns the names of enabled providers, sorted.
func (m *Manager) List() []string {
	names := []string{}
	for _, name := range m.registry.List() {
		if m.IsEnabled(name) {
			names = append(names, name)
		}
	}
	return names
}

// All returns every registered provider, including disabled ones.
func (m *Manager) All() map[string]Provider {
	return m.registry.All()
}

// Config returns the current configuration.
func (m *Manager) Config() Config {
	return m.config
}

// UpdateConfig replaces the manager's configuration without recreating
// provider instances, preserving flag bindings.
func (m *Manager) UpdateConfig(config Config) {
	m.config = config
}

// RefreshEnvConfig re-reads the filter variables from the environment.
// Call it after loading a .env file that may have changed them.
func (m *Manager) RefreshEnvConfig() {
	config := m.config
	if disabled := os.Getenv("IRODORI_DISABLED_PROVIDERS"); disabled != "" {
		config.Disabled = parseProviderList(disabled)
	}
	if enabled := os.Getenv("IRODORI_ENABLED_PROVIDERS"); enabled != "" {
		config.Enabled = parseProviderList(enabled)
	}
	m.config = config
}

// Discover scans the given directories for executables named
// irodori-provider-<name> and registers each one. Unusable binaries are
// logged and skipped rather than failing the scan.
func (m *Manager) Discover(dirs ...string) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				m.log.Warn("cannot read provider directory", "dir", dir, "error", err)
			}
			continue
		}

		for _, entry := range entries {
			name, ok := strings.CutPrefix(entry.Name(), ExternalPrefix)
			if !ok || name == "" || entry.IsDir() {
				continue
			}

			fi, err := entry.Info()
			if err != nil || fi.Mode()&0o111 == 0 {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if err := m.RegisterExternal(path); err != nil {
				m.log.Warn("skipping provider", "path", path, "error", err)
			}
		}
	}
}

// RegisterExternal probes the executable at path and registers it as a
// provider under the name it reports.
func (m *Manager) RegisterExternal(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve provider path: %w", err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("provider not found or not accessible: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("provider path is a directory, not a file: %s", abs)
	}

	info, err := QueryInfo(abs)
	if err != nil {
		return fmt.Errorf("failed to query provider info: %w", err)
	}

	if info.ProtocolVersion == "" {
		// Providers that predate the version field are allowed through;
		// the handshake still rejects genuinely incompatible ones.
		m.log.Warn("provider reports no protocol version", "path", abs)
	} else {
		compatible, err := plugin.IsCompatible(info.ProtocolVersion)
		if err != nil || !compatible {
			errMsg := "unknown error"
			if err != nil {
				errMsg = err.Error()
			}
			return fmt.Errorf(
				"provider %q protocol version %s is incompatible with host version %s: %s",
				info.Name, info.ProtocolVersion, plugin.ProtocolVersion, errMsg,
			)
		}
	}

	name := info.Name
	if name == "" {
		name = strings.TrimPrefix(filepath.Base(abs), ExternalPrefix)
	}

	m.registry.Register(NewExternalProvider(name, info.Description, abs, m.log))
	m.log.Debug("registered external provider", "name", name, "path", abs)
	return nil
}

// parseProviderList parses a comma-separated list of provider names.
func parseProviderList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
