// Package http is the one HTTP client path in irodori: a context-aware GET
// with a timeout, an identifying User-Agent and an optional body size cap.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/irodori/internal/security"
	"github.com/jmylchreest/irodori/internal/version"
)

const (
	// UserAgentName is the product token in the User-Agent header.
	UserAgentName = "irodori"

	// DefaultTimeout applies when FetchOptions.Timeout is zero.
	DefaultTimeout = 10 * time.Second
)

// FetchOptions configures a single Fetch call.
type FetchOptions struct {
	// Timeout bounds the whole request. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxBytes caps the response body size. Zero means no cap.
	MaxBytes int64

	// Headers are sent in addition to the User-Agent.
	Headers map[string]string
}

// Fetch GETs a URL and returns its body. Non-200 statuses are errors, and
// when MaxBytes is set an oversized body fails the read rather than being
// truncated. Callers fetching caller-supplied URLs are expected to run
// them through security.ValidateHTTPURL first.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgentName+"/"+version.Version)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var body io.Reader = resp.Body
	if opts.MaxBytes > 0 {
		body = security.NewLimitedReader(resp.Body, opts.MaxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}
