package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jmylchreest/irodori/internal/security"
)

// extractFromZip pulls the best-matching member out of a zip archive.
func extractFromZip(data []byte, want, base string, limit int64) ([]byte, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create zip reader: %w", err)
	}

	var target *zip.File
	bestPriority := 0
	var members []string

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		members = append(members, f.Name)
		priority := memberPriority(f.Name, f.FileInfo().Mode(), want, base)
		if priority > bestPriority {
			target = f
			bestPriority = priority
			if priority >= 90 {
				break
			}
		}
	}

	if err := checkAmbiguity(bestPriority, members, base); err != nil {
		return nil, "", err
	}

	rc, err := target.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", target.Name, err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, security.NewLimitedReader(rc, limit)); err != nil {
		return nil, "", fmt.Errorf("failed to extract %s: %w", target.Name, err)
	}
	return buf.Bytes(), filepath.Base(target.Name), nil
}
