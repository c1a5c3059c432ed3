// Package compression unpacks downloaded provider release assets.
//
// Release assets come in many shapes: bare binaries, gz/xz/bz2
// compressed binaries, and tar or zip archives that bundle the binary
// with licences and readmes. ExtractBinary finds the provider binary in
// any of them.
package compression

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExtractBinary returns the provider binary packed inside a release
// asset, along with the name it carried there. Bare binaries pass
// through untouched. limit caps the decompressed size.
func ExtractBinary(assetName string, data []byte, want string, limit int64) ([]byte, string, error) {
	base := BaseName(assetName)

	switch {
	case strings.HasSuffix(assetName, ".tar.gz"), strings.HasSuffix(assetName, ".tgz"):
		return extractFromTar(gzipOpener(data), want, base, limit)
	case strings.HasSuffix(assetName, ".tar.xz"), strings.HasSuffix(assetName, ".txz"):
		return extractFromTar(xzOpener(data), want, base, limit)
	case strings.HasSuffix(assetName, ".tar.bz2"), strings.HasSuffix(assetName, ".tbz"), strings.HasSuffix(assetName, ".tbz2"):
		return extractFromTar(bzip2Opener(data), want, base, limit)
	case strings.HasSuffix(assetName, ".zip"):
		return extractFromZip(data, want, base, limit)
	case strings.HasSuffix(assetName, ".gz"):
		binary, err := gunzip(data, limit)
		return binary, strings.TrimSuffix(assetName, ".gz"), err
	case strings.HasSuffix(assetName, ".xz"):
		binary, err := unxz(data, limit)
		return binary, strings.TrimSuffix(assetName, ".xz"), err
	case strings.HasSuffix(assetName, ".bz2"):
		binary, err := unbzip2(data, limit)
		return binary, strings.TrimSuffix(assetName, ".bz2"), err
	default:
		return data, assetName, nil
	}
}

// BaseName strips archive extensions and release suffixes from an asset
// name: "irodori-provider-wob_0.3.1_linux_amd64.tar.gz" becomes
// "irodori-provider-wob".
func BaseName(filename string) string {
	base := filename
	for _, ext := range []string{
		".tar.gz", ".tgz", ".tar.xz", ".txz", ".tar.bz2", ".tbz", ".tbz2",
		".zip", ".gz", ".xz", ".bz2",
	} {
		if before, ok := strings.CutSuffix(base, ext); ok {
			base = before
			break
		}
	}

	if idx := strings.Index(base, "_"); idx > 0 {
		return base[:idx]
	}
	return base
}

// memberPriority ranks an archive member as the provider binary. An
// explicit name match beats the archive's own base name, which beats
// any executable, which beats a lone regular file.
func memberPriority(name string, mode os.FileMode, want, base string) int {
	if want != "" && (name == want || strings.HasSuffix(name, "/"+want)) {
		return 100
	}
	if base != "" && filepath.Base(name) == base {
		return 90
	}
	if mode&0o111 != 0 {
		return 80
	}
	return 10
}

// checkAmbiguity rejects archives where no member stands out as the
// binary.
func checkAmbiguity(bestPriority int, members []string, base string) error {
	if len(members) == 0 {
		return fmt.Errorf("no files found in archive")
	}
	if bestPriority <= 10 && len(members) > 1 {
		return fmt.Errorf("multiple files in archive but none match expected binary name %q (found: %v)", base, members)
	}
	return nil
}
