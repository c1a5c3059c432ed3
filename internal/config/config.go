// Package config resolves irodori's ambient configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables understood by irodori. The provider enable and
// disable filters (IRODORI_ENABLED_PROVIDERS, IRODORI_DISABLED_PROVIDERS)
// are read by the provider manager directly.
const (
	// EnvCacheCapacity overrides the distance cache capacity.
	EnvCacheCapacity = "IRODORI_CACHE_CAPACITY"

	// EnvMetric selects the default distance metric.
	EnvMetric = "IRODORI_METRIC"

	// EnvProviderPath lists extra provider directories, separated like PATH.
	EnvProviderPath = "IRODORI_PROVIDER_PATH"

	// EnvCatalogue points at an external catalogue file.
	EnvCatalogue = "IRODORI_CATALOGUE"
)

// LoadEnv seeds the environment from a .env file. With an explicit path a
// missing file is an error; with an empty path a missing ./.env is ignored.
// Variables already set in the environment win over the file.
func LoadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	_ = godotenv.Load()
	return nil
}

// CacheCapacity returns the configured distance cache capacity.
// Zero means the engine default.
func CacheCapacity() int {
	return getEnvInt(EnvCacheCapacity, 0)
}

// Metric returns the configured default metric name, empty when unset.
func Metric() string {
	return os.Getenv(EnvMetric)
}

// ProviderPath returns the extra provider directories from the environment.
func ProviderPath() []string {
	value := os.Getenv(EnvProviderPath)
	if value == "" {
		return nil
	}

	var dirs []string
	for _, dir := range filepath.SplitList(value) {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Catalogue returns the configured external catalogue path, empty when unset.
func Catalogue() string {
	return os.Getenv(EnvCatalogue)
}

// ConfigDir returns irodori's directory under the user config root.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "irodori"), nil
}

// ProvidersDir returns the directory external providers are installed into.
func ProvidersDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "providers"), nil
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}
