package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/irodori/internal/security"
)

// gunzip decompresses a single gzipped file.
func gunzip(data []byte, limit int64) ([]byte, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	binary, err := io.ReadAll(security.NewLimitedReader(gzr, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress asset: %w", err)
	}
	return binary, nil
}

// unxz decompresses a single xz-compressed file.
func unxz(data []byte, limit int64) ([]byte, error) {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	binary, err := io.ReadAll(security.NewLimitedReader(xzr, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress asset: %w", err)
	}
	return binary, nil
}

// unbzip2 decompresses a single bzip2-compressed file.
func unbzip2(data []byte, limit int64) ([]byte, error) {
	binary, err := io.ReadAll(security.NewLimitedReader(bzip2.NewReader(bytes.NewReader(data)), limit))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress asset: %w", err)
	}
	return binary, nil
}
