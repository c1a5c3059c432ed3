// Package security holds the validation helpers shared by everything in
// irodori that touches the network or decodes untrusted bytes.
package security

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
)

var errSizeLimit = errors.New("size limit exceeded")

// ValidateHTTPURL checks that a download URL is safe to fetch: HTTPS only,
// with a hostname that is neither localhost nor a loopback, private,
// link-local or unspecified address. Used for any URL that arrives from
// user input or provider output before it reaches the HTTP client.
func ValidateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("empty URL")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return fmt.Errorf("only HTTPS URLs are allowed (got %s)", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return errors.New("URL must have a hostname")
	}
	if hostIsPrivate(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}
	return nil
}

// hostIsPrivate reports whether host names the local machine or an address
// that should never be reachable from a palette download.
func hostIsPrivate(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		// A DNS name; resolution is the transport's problem.
		return false
	}
	switch {
	case ip.IsLoopback(), ip.IsPrivate():
		return true
	case ip.IsLinkLocalUnicast(), ip.IsUnspecified():
		return true
	}
	return false
}

// SafeUint8 clamps an int into the 0-255 channel range.
func SafeUint8(val int) uint8 {
	switch {
	case val < 0:
		return 0
	case val > 255:
		return 255
	}
	return uint8(val)
}

// SafeUint8FromUint32 clamps a uint32 into the 0-255 channel range. Handy
// for the 16-bit channels image.Color returns.
func SafeUint8FromUint32(val uint32) uint8 {
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// LimitedReader caps the total bytes readable from an underlying reader,
// failing the read rather than truncating. It guards downloads against
// oversized responses and archive extraction against decompression bombs.
type LimitedReader struct {
	r    io.Reader
	left int64
}

// NewLimitedReader wraps r so at most maxBytes can be read from it.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{r: r, left: maxBytes}
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.left <= 0 {
		return 0, errSizeLimit
	}
	if int64(len(p)) > l.left {
		p = p[:l.left]
	}
	n, err := l.r.Read(p)
	l.left -= int64(n)
	return n, err
}
