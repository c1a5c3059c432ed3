// Package image provides utilities for loading images from files,
// directories and URLs.
package image

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"image"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	// Decoder registrations for the formats extraction accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/jmylchreest/irodori/internal/security"
	"github.com/jmylchreest/irodori/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load decodes an image file. JPEG, PNG, GIF and WebP decode through the
// registered decoders.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path is empty")
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("no image at %s", path)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	case info.IsDir():
		return nil, fmt.Errorf("%s is a directory, not an image file", path)
	}

	file, err := os.Open(path) // #nosec G304 - path comes from the user
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image (format %q): %w", format, err)
	}
	return img, nil
}

// IsURL reports whether the path is an HTTP(S) URL rather than a local path.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that the given path points at something the
// loaders can handle: a decodable image file, a directory (scanned later)
// or an HTTP(S) URL (fetched later).
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path is empty")
	}

	// URLs are fetched later; avoid touching the network twice.
	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no image file or directory at %s", path)
		}
		return fmt.Errorf("access image path: %w", err)
	}

	// Directories are scanned at load time.
	if info.IsDir() {
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - path comes from the user
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("not a supported image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns the supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

func isImageFile(path string) bool {
	return slices.Contains(SupportedImageExtensions(), strings.ToLower(filepath.Ext(path)))
}

// ScanDirectoryForImages scans a directory and returns all image files in
// it. It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var found []string
	for _, entry := range entries {
		if !isImageFile(entry.Name()) {
			continue
		}
		full := filepath.Join(dirPath, entry.Name())

		// Stat resolves symlinks; skip anything unreadable and
		// symlinks that lead back to directories.
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		found = append(found, full)
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("no supported images in %s", dirPath)
	}
	return found, nil
}

// SelectRandomImage picks one path from the list at random.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("no image paths to choose from")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err == nil {
		return imagePaths[n.Int64()], nil
	}

	// rand.Int failing means the platform reader is misbehaving; raw
	// bytes modulo the length is close enough for picking a wallpaper.
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("random selection failed: %w", err)
	}
	return imagePaths[binary.LittleEndian.Uint64(buf[:])%uint64(len(imagePaths))], nil
}

// ResolveImagePath resolves a path that could be a file, a directory or a
// URL. Directories are scanned and a random image is picked; files and
// URLs pass through unchanged.
func ResolveImagePath(path string) (string, error) {
	if IsURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("access image path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	found, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return SelectRandomImage(found)
}

// GetImageDimensions returns the width and height of an image without fully
// decoding it.
func GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path) // #nosec G304 - path comes from the user
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	cacheDir   string
}

// NewSmartLoader creates a new SmartLoader instance. Remote images are
// cached under the user cache directory.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

// WithCacheDir redirects the download cache, mainly for tests.
func (l *SmartLoader) WithCacheDir(dir string) *SmartLoader {
	l.cacheDir = dir
	return l
}

// Load loads an image from either a local file path or an HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if IsURL(path) {
		return l.loadFromURL(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

// loadFromURL fetches and decodes an image from an HTTP(S) URL. The URL is
// validated first; only public HTTPS hosts are fetched. Downloads go
// through the on-disk image cache, so repeated runs against the same URL
// skip the network.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if err := security.ValidateHTTPURL(url); err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}

	path, err := imagecache.Fetch(ctx, url, imagecache.Options{Dir: l.cacheDir})
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	return l.fileLoader.Load(ctx, path)
}
