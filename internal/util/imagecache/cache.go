// Package imagecache stores downloaded images on disk so repeated runs
// against the same URL skip the network.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/irodori/internal/util/http"
)

// maxImageBytes caps how large a cached download may be.
const maxImageBytes = 50 * 1024 * 1024

// Options configures a cache fetch.
type Options struct {
	// Dir is the cache directory. Empty means DefaultDir.
	Dir string

	// Refresh forces a download even when a cached copy exists.
	Refresh bool
}

// DefaultDir returns the directory cached images are stored in.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "irodori", "images"), nil
	}
	return filepath.Join(cacheDir, "irodori", "images"), nil
}

// cacheFilename derives a deterministic filename from a URL: a SHA-256
// prefix plus the URL's extension, so the same URL always maps to the
// same cache entry.
func cacheFilename(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", sum[:16])

	ext := filepath.Ext(url)
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}

	return name + ext
}

// Fetch returns a local path for the image at url, downloading it into
// the cache on a miss. Callers fetching caller-supplied URLs are
// expected to run them through security.ValidateHTTPURL first.
func Fetch(ctx context.Context, url string, opts Options) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		defaultDir, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, cacheFilename(url))
	if !opts.Refresh {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{MaxBytes: maxImageBytes})
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	// Write through a temp file so an interrupted download never leaves
	// a truncated entry behind.
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", writeErr)
	}
	if closeErr != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close cached image: %w", closeErr)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store cached image: %w", err)
	}

	return path, nil
}
