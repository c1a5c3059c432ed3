package compression

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/irodori/internal/security"
)

// opener rebuilds a decompressing reader over the raw archive bytes,
// letting the tar stream be walked more than once.
type opener func() (io.Reader, error)

func gzipOpener(data []byte) opener {
	return func() (io.Reader, error) {
		return gzip.NewReader(bytes.NewReader(data))
	}
}

func xzOpener(data []byte) opener {
	return func() (io.Reader, error) {
		return xz.NewReader(bytes.NewReader(data))
	}
}

func bzip2Opener(data []byte) opener {
	return func() (io.Reader, error) {
		return bzip2.NewReader(bytes.NewReader(data)), nil
	}
}

// extractFromTar pulls the best-matching member out of a tar stream.
// The stream is walked twice: once to pick the member, once to copy it.
func extractFromTar(open opener, want, base string, limit int64) ([]byte, string, error) {
	r, err := open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open archive: %w", err)
	}
	tr := tar.NewReader(r)

	target := ""
	bestPriority := 0
	var members []string

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		members = append(members, header.Name)
		priority := memberPriority(header.Name, header.FileInfo().Mode(), want, base)
		if priority > bestPriority {
			target = header.Name
			bestPriority = priority
			if priority >= 90 {
				break
			}
		}
	}

	if err := checkAmbiguity(bestPriority, members, base); err != nil {
		return nil, "", err
	}

	r, err = open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to reopen archive: %w", err)
	}
	tr = tar.NewReader(r)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, "", fmt.Errorf("member %s not found on second pass", target)
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Name != target {
			continue
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, security.NewLimitedReader(tr, limit)); err != nil {
			return nil, "", fmt.Errorf("failed to extract %s: %w", target, err)
		}
		return buf.Bytes(), filepath.Base(target), nil
	}
}
